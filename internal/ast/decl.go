package ast

import (
	"displaystr/internal/source"
)

// ShapeKind is the structural kind of a variant.
type ShapeKind uint8

const (
	// ShapeUnit is a variant with no field list at all.
	ShapeUnit ShapeKind = iota
	// ShapePositional is a tuple-like variant `Name(T, U)`. The field list
	// may be empty: `Name()` carries no data but keeps its parentheses in
	// output.
	ShapePositional
	// ShapeNamed is a struct-like variant `Name { a: T }`. The field list
	// may be empty.
	ShapeNamed
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeUnit:
		return "Unit"
	case ShapePositional:
		return "Positional"
	case ShapeNamed:
		return "Named"
	}
	return "Unknown"
}

// Field is one field of a positional or named variant. Name is empty for
// positional fields. Type is the raw type text, carried verbatim.
type Field struct {
	Name     string
	NameSpan source.Span
	Type     string
	TypeSpan source.Span
}

// Variant is one arm of the enum.
type Variant struct {
	Name      string
	NameSpan  source.Span
	Shape     ShapeKind
	Fields    []Field
	Directive *Directive // nil when the variant has none (a validation error)
	// Doc and Attrs are the variant's leading trivia, preserved in output.
	Doc   []string
	Attrs []string
	Span  source.Span
}

// EnumDecl is the parsed sum-type declaration.
type EnumDecl struct {
	Name     string
	NameSpan source.Span
	// Vis is the raw visibility text ("", "pub", "pub(crate)", ...).
	Vis string
	// Generics is the raw `<...>` text, empty if absent.
	Generics string
	// WhereClause is the raw `where ...` text, empty if absent.
	WhereClause string
	Variants    []Variant
	Doc         []string
	Attrs       []string
	Span        source.Span
}
