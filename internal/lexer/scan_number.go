package lexer

import (
	"displaystr/internal/token"
)

// scanNumber scans decimal integer and float literals. Numbers only occur
// inside argument expressions and array type lengths, both of which are
// carried verbatim, so there is no base or suffix handling here.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	kind := token.IntLit
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
