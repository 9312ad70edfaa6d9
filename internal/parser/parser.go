package parser

import (
	"slices"

	"displaystr/internal/ast"
	"displaystr/internal/diag"
	"displaystr/internal/lexer"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit was reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Decls []ast.EnumDecl
	// Fatal is set when the input was not a sum-type declaration at all and
	// per-variant work never started.
	Fatal bool
}

// Parser holds the state for parsing one declaration file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// ParseFile parses every enum declaration in one file.
// A non-enum construct at top level is fatal: nothing downstream can run
// without a parsed shape.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	var decls []ast.EnumDecl
	for !p.at(token.EOF) {
		decl, ok := p.parseEnumDecl()
		if !ok {
			return Result{Decls: decls, Fatal: true}
		}
		decls = append(decls, decl)
	}
	return Result{Decls: decls}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of the given kind or reports code with msg.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{}, false
}

// resyncUntil skips tokens until one of the stop kinds (or EOF).
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for {
		k := p.lx.Peek().Kind
		if k == token.EOF || slices.Contains(kinds, k) {
			return
		}
		p.advance()
	}
}

func (p *Parser) err(code diag.Code, msg string) {
	p.emit(code, diag.SevError, p.lx.Peek().Span, msg)
}

func (p *Parser) emit(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// parseIdent expects and consumes an identifier.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.atOr(token.Ident, token.Underscore) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return token.Token{}, false
}

// textBetween slices the raw source covered by [start.Start, end.End).
func (p *Parser) textBetween(start, end source.Span) string {
	content := p.lx.File().Content
	if start.Start >= end.End || end.End > uint32(len(content)) {
		return ""
	}
	return string(content[start.Start:end.End])
}
