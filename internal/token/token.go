package token

import (
	"displaystr/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwEnum, KwPub, KwWhere, KwIn, KwAs, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// DocLines returns the text of every leading doc comment, `///` prefix and
// surrounding whitespace stripped.
func (t Token) DocLines() []string {
	var lines []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine {
			text := tr.Text
			if len(text) >= 3 {
				text = text[3:]
			}
			if len(text) > 0 && text[0] == ' ' {
				text = text[1:]
			}
			lines = append(lines, text)
		}
	}
	return lines
}

// Attrs returns the raw text of every leading attribute.
func (t Token) Attrs() []string {
	var attrs []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaAttr {
			attrs = append(attrs, tr.Text)
		}
	}
	return attrs
}
