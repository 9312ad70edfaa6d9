package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// scanOperatorOrPunct scans punctuation greedily: two-byte sequences first,
// then single bytes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('&', '&'):
		return emit(token.AmpAmp)
	case lx.try2('|', '|'):
		return emit(token.PipePipe)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('.', '.'):
		return emit(token.DotDot)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '=':
		return emit(token.Assign)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '!':
		return emit(token.Bang)
	case '?':
		return emit(token.Question)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '_':
		return emit(token.Underscore)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+string(lx.file.Content[sp.Start:sp.End]))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
