package token

import (
	"displaystr/internal/source"
)

// TriviaKind classifies non-semantic text attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine is a `///` doc comment. Doc lines participate in the
	// doc-generation conflict rule, so they are kept distinct from plain
	// line comments.
	TriviaDocLine
	// TriviaAttr is a `#[...]` attribute, preserved verbatim in output.
	TriviaAttr
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaAttr:
		return "Attr"
	}
	return "Unknown"
}

// Trivia is one run of non-semantic text.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
