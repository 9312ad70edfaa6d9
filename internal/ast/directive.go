package ast

import (
	"displaystr/internal/source"
)

// DirectiveKind distinguishes the two directive forms.
type DirectiveKind uint8

const (
	// DirectiveSimple is a bare string literal: `= "template"`.
	DirectiveSimple DirectiveKind = iota
	// DirectiveWithArgs is a parenthesized list whose head is the template:
	// `= ("template", expr, ...)`. Positional placeholders in the template
	// index into Args, not into the variant's fields.
	DirectiveWithArgs
)

// Arg is one argument expression of a WithArgs directive, carried as raw
// source text. Argument expressions are opaque to validation; the
// formatting host compiles them in variant-binding scope.
type Arg struct {
	Text string
	Span source.Span
}

// Directive is the per-variant display specification.
type Directive struct {
	Kind DirectiveKind
	// Template is the string literal's source text including quotes.
	Template string
	// TemplateSpan covers the literal including quotes; the template
	// scanner shifts placeholder spans relative to it.
	TemplateSpan source.Span
	Args         []Arg
	Span         source.Span
}

// TemplateContent returns the template text without the surrounding quotes.
func (d *Directive) TemplateContent() string {
	if len(d.Template) >= 2 {
		return d.Template[1 : len(d.Template)-1]
	}
	return d.Template
}

// ContentSpan returns the span of the template text without the quotes.
func (d *Directive) ContentSpan() source.Span {
	sp := d.TemplateSpan
	if sp.Len() >= 2 {
		sp.Start++
		sp.End--
	}
	return sp
}
