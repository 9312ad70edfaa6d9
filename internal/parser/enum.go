package parser

import (
	"displaystr/internal/ast"
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// parseEnumDecl parses one declaration:
//
//	pub enum Name<T> where T: Display { Variant(T) = "...", ... }
//
// Doc comments and attributes ride on the leading trivia of the first
// significant token and are preserved verbatim.
func (p *Parser) parseEnumDecl() (ast.EnumDecl, bool) {
	var decl ast.EnumDecl

	first := p.lx.Peek()
	decl.Doc = first.DocLines()
	decl.Attrs = first.Attrs()

	// Optional visibility: `pub` or `pub(...)`.
	if p.at(token.KwPub) {
		pubTok := p.advance()
		if p.at(token.LParen) {
			p.advance()
			depth := 1
			for depth > 0 && !p.at(token.EOF) {
				switch p.advance().Kind {
				case token.LParen:
					depth++
				case token.RParen:
					depth--
				}
			}
		}
		decl.Vis = p.textBetween(pubTok.Span, p.lastSpan)
	}

	enumTok, ok := p.expect(token.KwEnum, diag.SynExpectEnum, "expected an `enum` declaration")
	if !ok {
		return decl, false
	}
	startSpan := enumTok.Span

	nameTok, ok := p.parseIdent()
	if !ok {
		return decl, false
	}
	decl.Name = nameTok.Text
	decl.NameSpan = nameTok.Span

	// Raw generics text: `<` ... matching `>`.
	if p.at(token.Lt) {
		ltTok := p.advance()
		depth := 1
		for depth > 0 && !p.at(token.EOF) {
			switch p.advance().Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			}
		}
		if depth > 0 {
			p.emit(diag.SynUnclosedDelimiter, diag.SevError, ltTok.Span, "unclosed '<' in generic parameters")
			return decl, false
		}
		decl.Generics = p.textBetween(ltTok.Span, p.lastSpan)
	}

	// Raw where clause: `where` up to the body's '{'.
	if p.at(token.KwWhere) {
		whereTok := p.advance()
		for !p.at(token.LBrace) && !p.at(token.EOF) {
			p.advance()
		}
		decl.WhereClause = p.textBetween(whereTok.Span, p.lastSpan)
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' for enum body"); !ok {
		return decl, false
	}

	variants, ok := p.parseVariants()
	if !ok {
		return decl, false
	}
	decl.Variants = variants

	rbraceTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' after enum body")
	if !ok {
		return decl, false
	}
	decl.Span = startSpan.Cover(rbraceTok.Span)

	return decl, true
}

// parseVariants parses the comma-separated variant list.
func (p *Parser) parseVariants() ([]ast.Variant, bool) {
	var variants []ast.Variant
	seen := make(map[string]source.Span)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok := p.lx.Peek()
		doc := nameTok.DocLines()
		attrs := nameTok.Attrs()

		if !p.atOr(token.Ident, token.Underscore) {
			p.err(diag.SynExpectIdentifier, "expected variant name, got \""+nameTok.Text+"\"")
			return nil, false
		}
		p.advance()

		v := ast.Variant{
			Name:     nameTok.Text,
			NameSpan: nameTok.Span,
			Shape:    ast.ShapeUnit,
			Doc:      doc,
			Attrs:    attrs,
		}

		if prev, dup := seen[v.Name]; dup {
			p.emit(diag.SynDuplicateVariant, diag.SevError, v.NameSpan,
				"duplicate variant `"+v.Name+"` (previous at "+prev.String()+")")
		} else {
			seen[v.Name] = v.NameSpan
		}

		switch p.lx.Peek().Kind {
		case token.LParen:
			fields, ok := p.parsePositionalFields()
			if !ok {
				return nil, false
			}
			v.Shape = ast.ShapePositional
			v.Fields = fields
		case token.LBrace:
			fields, ok := p.parseNamedFields()
			if !ok {
				return nil, false
			}
			v.Shape = ast.ShapeNamed
			v.Fields = fields
		}

		// Optional directive. Its absence is the validator's business, not a
		// syntax error; the arm must still parse so the rest of the variants
		// get checked in the same run.
		if p.at(token.Assign) {
			dir, ok := p.parseDirective()
			if ok {
				v.Directive = dir
			}
		}

		v.Span = nameTok.Span.Cover(p.lastSpan)
		variants = append(variants, v)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	return variants, true
}

// parsePositionalFields parses `(T, U, ...)`; the field list may be empty.
func (p *Parser) parsePositionalFields() ([]ast.Field, bool) {
	lparen := p.advance()
	fields := []ast.Field{}

	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.emit(diag.SynUnclosedDelimiter, diag.SevError, lparen.Span, "unclosed '(' in variant fields")
			return nil, false
		}
		typeText, typeSpan, ok := p.parseTypeText(token.RParen)
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{Type: typeText, TypeSpan: typeSpan})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after variant fields"); !ok {
		return nil, false
	}
	return fields, true
}

// parseNamedFields parses `{ name: T, ... }`; field names must be unique.
func (p *Parser) parseNamedFields() ([]ast.Field, bool) {
	lbrace := p.advance()
	fields := []ast.Field{}
	seen := make(map[string]source.Span)

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.emit(diag.SynUnclosedDelimiter, diag.SevError, lbrace.Span, "unclosed '{' in variant fields")
			return nil, false
		}

		nameTok, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if prev, dup := seen[nameTok.Text]; dup {
			p.emit(diag.SynDuplicateField, diag.SevError, nameTok.Span,
				"duplicate field `"+nameTok.Text+"` (previous at "+prev.String()+")")
		} else {
			seen[nameTok.Text] = nameTok.Span
		}

		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return nil, false
		}

		typeText, typeSpan, ok := p.parseTypeText(token.RBrace)
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{
			Name:     nameTok.Text,
			NameSpan: nameTok.Span,
			Type:     typeText,
			TypeSpan: typeSpan,
		})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' after variant fields"); !ok {
		return nil, false
	}
	return fields, true
}

// parseTypeText captures a type as raw text: tokens up to a depth-0 comma
// or the closing delimiter. Parens, brackets, braces and angle brackets
// nest; the text is carried verbatim into output.
func (p *Parser) parseTypeText(closing token.Kind) (string, source.Span, bool) {
	first := p.lx.Peek()
	if first.Kind == closing || first.Kind == token.Comma {
		p.err(diag.SynExpectType, "expected type")
		return "", source.Span{}, false
	}

	depth := 0
	startSpan := first.Span
	consumed := false
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && (k == token.Comma || k == closing) {
			break
		}
		switch k {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.Gt:
			// A stray closer (a lone `>` in a type) must not push depth
			// negative, or the next top-level comma stops terminating.
			if depth > 0 {
				depth--
			}
		}
		p.advance()
		consumed = true
	}
	if !consumed {
		p.err(diag.SynExpectType, "expected type")
		return "", source.Span{}, false
	}
	span := startSpan.Cover(p.lastSpan)
	return p.textBetween(startSpan, p.lastSpan), span, true
}
