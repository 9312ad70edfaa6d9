package lexer

import (
	"golang.org/x/text/unicode/norm"

	"displaystr/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an identifier and checks it against the keyword
// table. Keywords are case-sensitive (lowercase only). Token.Text is the
// exact source slice, NFC-normalized for Unicode identifiers so template
// placeholders resolve regardless of the encoder's normalization form.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		// ASCII
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for {
			b := lx.cursor.Peek()
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
		}
	} else {
		// Unicode
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.file.Content[sp.Start:sp.End]
	var text string
	if containsNonASCII(lex) {
		text = norm.NFC.String(string(lex))
	} else {
		text = string(lex)
	}

	if len(lex) == 1 && lex[0] == '_' {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func containsNonASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8RuneSelf {
			return true
		}
	}
	return false
}
