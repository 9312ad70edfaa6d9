package parser

import (
	"displaystr/internal/ast"
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// parseDirective parses `= "template"` or `= ("template", arg, ...)`.
// The caller has already seen the '='. A malformed directive is reported
// but the variant survives so later variants are still checked; the bool
// result says whether a usable directive came out.
func (p *Parser) parseDirective() (*ast.Directive, bool) {
	eqTok := p.advance() // '='

	switch p.lx.Peek().Kind {
	case token.StringLit:
		litTok := p.advance()
		return &ast.Directive{
			Kind:         ast.DirectiveSimple,
			Template:     litTok.Text,
			TemplateSpan: litTok.Span,
			Span:         eqTok.Span.Cover(litTok.Span),
		}, true

	case token.LParen:
		return p.parseDirectiveWithArgs(eqTok)

	default:
		p.err(diag.DirExpectString, "expected a template string after '=', got \""+p.lx.Peek().Text+"\"")
		p.resyncUntil(token.Comma, token.RBrace)
		return nil, false
	}
}

// parseDirectiveWithArgs parses the parenthesized form. The head must be a
// string literal; everything after it is a comma-separated list of raw
// argument expressions captured verbatim.
func (p *Parser) parseDirectiveWithArgs(eqTok token.Token) (*ast.Directive, bool) {
	p.advance() // '('

	if !p.at(token.StringLit) {
		p.err(diag.DirExpectString, "a parenthesized directive must start with a template string")
		p.resyncDirective()
		return nil, false
	}
	litTok := p.advance()

	dir := &ast.Directive{
		Kind:         ast.DirectiveWithArgs,
		Template:     litTok.Text,
		TemplateSpan: litTok.Span,
	}

	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break // trailing comma
		}
		arg, ok := p.parseArgExpr()
		if !ok {
			p.resyncDirective()
			return nil, false
		}
		dir.Args = append(dir.Args, arg)
	}

	rparen, ok := p.expect(token.RParen, diag.DirMalformed, "expected ')' to close the directive")
	if !ok {
		p.resyncDirective()
		return nil, false
	}

	dir.Span = eqTok.Span.Cover(rparen.Span)
	return dir, true
}

// parseArgExpr captures one argument expression as raw text: tokens up to a
// depth-0 comma or the closing ')'. Nested parens, brackets and braces keep
// their commas.
func (p *Parser) parseArgExpr() (ast.Arg, bool) {
	first := p.lx.Peek()
	if first.Kind == token.Comma || first.Kind == token.RParen || first.Kind == token.EOF {
		p.err(diag.DirMalformed, "expected an argument expression")
		return ast.Arg{}, false
	}

	depth := 0
	startSpan := first.Span
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && (k == token.Comma || k == token.RParen) {
			break
		}
		switch k {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
	if p.at(token.EOF) {
		p.err(diag.DirMalformed, "unterminated argument expression")
		return ast.Arg{}, false
	}

	span := startSpan.Cover(p.lastSpan)
	return ast.Arg{Text: p.textBetween(startSpan, p.lastSpan), Span: span}, true
}

// resyncDirective skips to the next variant boundary after a bad directive.
// A ')' at depth zero is consumed so the following comma lands the parser on
// the next variant.
func (p *Parser) resyncDirective() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.Comma:
			if depth == 0 {
				return
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}
