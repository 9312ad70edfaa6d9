package token

// Kind enumerates every token the declaration grammar produces.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	// Identifiers and literals
	Ident
	Underscore
	IntLit
	FloatLit
	StringLit

	// Keywords
	KwEnum
	KwPub
	KwWhere
	KwIn
	KwAs
	KwTrue
	KwFalse

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket

	// Punctuation and operators. The directive grammar itself needs only
	// '=', ',' and string literals; the rest exists so field types and
	// argument expressions lex into ordinary tokens.
	Assign
	Comma
	Colon
	ColonColon
	Semicolon
	Dot
	DotDot
	Hash
	Bang
	Question
	Amp
	AmpAmp
	Pipe
	PipePipe
	Plus
	Minus
	Star
	Slash
	Percent
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	BangEq
	Arrow
	FatArrow
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Invalid:    "Invalid",
	Ident:      "Ident",
	Underscore: "Underscore",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	KwEnum:     "KwEnum",
	KwPub:      "KwPub",
	KwWhere:    "KwWhere",
	KwIn:       "KwIn",
	KwAs:       "KwAs",
	KwTrue:     "KwTrue",
	KwFalse:    "KwFalse",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Assign:     "Assign",
	Comma:      "Comma",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Semicolon:  "Semicolon",
	Dot:        "Dot",
	DotDot:     "DotDot",
	Hash:       "Hash",
	Bang:       "Bang",
	Question:   "Question",
	Amp:        "Amp",
	AmpAmp:     "AmpAmp",
	Pipe:       "Pipe",
	PipePipe:   "PipePipe",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Lt:         "Lt",
	Gt:         "Gt",
	LtEq:       "LtEq",
	GtEq:       "GtEq",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Arrow:      "Arrow",
	FatArrow:   "FatArrow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
