package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token:
//   - spaces and tabs coalesce into one TriviaSpace
//   - consecutive newlines coalesce into one TriviaNewline
//   - //... up to \n -> TriviaLineComment
//   - /// ... up to \n -> TriviaDocLine
//   - /* ... */ -> TriviaBlockComment (nesting supported; unterminated is
//     reported and cut at EOF)
//   - #[...] -> TriviaAttr (balanced brackets, preserved verbatim)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		if b == '#' {
			if lx.scanAttrIntoHold() {
				continue
			}
		}

		// no more trivia
		break
	}
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// //... , /*...*/ , ///...
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/': // "//" or "///"
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.holdTrivia(kind, start)
		return true

	case '*': // "/* ... */" (with nesting)
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.holdTrivia(token.TriviaBlockComment, start)
		return true
	default:
		// not a comment; rewind so it scans as the '/' operator
		lx.cursor.Reset(start)
		return false
	}
}

// #[...] with balanced square brackets. String literals inside the
// attribute are skipped so a ']' inside one does not close it.
func (lx *Lexer) scanAttrIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('#') {
		return false
	}
	if lx.cursor.Peek() != '[' {
		lx.cursor.Reset(start)
		return false
	}
	lx.cursor.Bump()
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch lx.cursor.Bump() {
		case '[':
			depth++
		case ']':
			depth--
		case '"':
			for !lx.cursor.EOF() {
				c := lx.cursor.Bump()
				if c == '\\' {
					lx.cursor.Bump()
					continue
				}
				if c == '"' {
					break
				}
			}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedAttr, sp, "unterminated attribute")
	}
	lx.holdTrivia(token.TriviaAttr, start)
	return true
}
