package lexer

import (
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// Lexer produces the token stream for one declaration file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading trivia from hold is not glued onto EOF.
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		// A lone "_" is the Underscore token; "_0" and "__x" are identifiers.
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Possible Unicode identifier; scanIdentOrKeyword sorts it out.
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}
