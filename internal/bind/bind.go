// Package bind derives the formatting bindings of a variant from its shape.
//
// Positional variants bind ordinals `_0`, `_1`, ...; named variants bind
// their field names; unit variants bind nothing. The binding set is what
// named placeholders resolve against and what the generated match arm
// destructures.
package bind

import (
	"strconv"

	"displaystr/internal/ast"
)

// Binding is one name a variant's fields expose to its template.
type Binding struct {
	// Name is the destructured identifier: a field name, or `_i` for the
	// i-th positional field.
	Name string
	// Ordinal is the field's position, for implicit and explicit
	// positional placeholders in simple directives.
	Ordinal int
}

// Set is the ordered bindings of one variant.
type Set struct {
	Shape    ast.ShapeKind
	Bindings []Binding
}

// Of computes the binding set for a variant.
func Of(v *ast.Variant) Set {
	set := Set{Shape: v.Shape}
	switch v.Shape {
	case ast.ShapeUnit:
		// no bindings
	case ast.ShapePositional:
		set.Bindings = make([]Binding, len(v.Fields))
		for i := range v.Fields {
			set.Bindings[i] = Binding{Name: "_" + strconv.Itoa(i), Ordinal: i}
		}
	case ast.ShapeNamed:
		set.Bindings = make([]Binding, len(v.Fields))
		for i, f := range v.Fields {
			set.Bindings[i] = Binding{Name: f.Name, Ordinal: i}
		}
	}
	return set
}

// Len returns the number of bindings.
func (s Set) Len() int { return len(s.Bindings) }

// Has reports whether name is bound. Positional variants resolve their
// ordinal identifiers, so `{_0}` in a template addresses the first field.
func (s Set) Has(name string) bool {
	for _, b := range s.Bindings {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Names returns the bound names in declaration order.
func (s Set) Names() []string {
	out := make([]string, len(s.Bindings))
	for i, b := range s.Bindings {
		out[i] = b.Name
	}
	return out
}
