package bind_test

import (
	"testing"

	"displaystr/internal/ast"
	"displaystr/internal/bind"
)

func TestOfUnit(t *testing.T) {
	v := ast.Variant{Name: "Unknown", Shape: ast.ShapeUnit}
	set := bind.Of(&v)
	if set.Len() != 0 {
		t.Errorf("expected no bindings, got %d", set.Len())
	}
	if set.Has("_0") {
		t.Error("unit variant must not bind anything")
	}
}

func TestOfPositional(t *testing.T) {
	v := ast.Variant{
		Name:  "Redaction",
		Shape: ast.ShapePositional,
		Fields: []ast.Field{
			{Type: "String"},
			{Type: "Vec<String>"},
		},
	}
	set := bind.Of(&v)
	if got := set.Names(); len(got) != 2 || got[0] != "_0" || got[1] != "_1" {
		t.Errorf("names: %#v", got)
	}
	if !set.Has("_0") || !set.Has("_1") {
		t.Error("ordinal identifiers must resolve on tuple variants")
	}
	if set.Has("_2") {
		t.Error("_2 must not resolve on a 2-field variant")
	}
	if set.Bindings[1].Ordinal != 1 {
		t.Errorf("ordinal: %d", set.Bindings[1].Ordinal)
	}
}

func TestOfNamed(t *testing.T) {
	v := ast.Variant{
		Name:  "InvalidHeader",
		Shape: ast.ShapeNamed,
		Fields: []ast.Field{
			{Name: "expected", Type: "String"},
			{Name: "found", Type: "String"},
		},
	}
	set := bind.Of(&v)
	if got := set.Names(); len(got) != 2 || got[0] != "expected" || got[1] != "found" {
		t.Errorf("names: %#v", got)
	}
	if !set.Has("found") {
		t.Error("field name must resolve")
	}
	if set.Has("missing") || set.Has("_0") {
		t.Error("named variants resolve field names only")
	}
}
