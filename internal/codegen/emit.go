// Package codegen renders the expansion of a parsed declaration: the
// declaration with its directives stripped, followed by a Display
// implementation dispatching over the variants.
package codegen

import (
	"strings"

	"displaystr/internal/ast"
	"displaystr/internal/bind"
	"displaystr/internal/template"
)

// Options configures the emitter.
type Options struct {
	// Doc inserts each variant's template as a `///` comment on the
	// stripped declaration.
	Doc bool
}

const indent = "    "

// Emit renders the expansion of every declaration in order, separated by
// one blank line. The result is deterministic: identical input and options
// give byte-identical output.
func Emit(decls []ast.EnumDecl, opts Options) string {
	var b strings.Builder
	for i := range decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		emitEnum(&b, &decls[i], opts)
		b.WriteByte('\n')
		emitImpl(&b, &decls[i])
	}
	return b.String()
}

// emitEnum renders the stripped declaration: everything the input carried
// except the `= ...` directives.
func emitEnum(b *strings.Builder, decl *ast.EnumDecl, opts Options) {
	writeDoc(b, "", decl.Doc)
	writeAttrs(b, "", decl.Attrs)
	if decl.Vis != "" {
		b.WriteString(decl.Vis)
		b.WriteByte(' ')
	}
	b.WriteString("enum ")
	b.WriteString(decl.Name)
	b.WriteString(decl.Generics)
	if decl.WhereClause != "" {
		b.WriteByte(' ')
		b.WriteString(decl.WhereClause)
	}
	b.WriteString(" {\n")
	for i := range decl.Variants {
		emitVariant(b, &decl.Variants[i], opts)
	}
	b.WriteString("}\n")
}

func emitVariant(b *strings.Builder, v *ast.Variant, opts Options) {
	writeDoc(b, indent, v.Doc)
	writeAttrs(b, indent, v.Attrs)
	if opts.Doc && v.Directive != nil {
		writeDocTemplate(b, indent, v.Directive)
	}

	b.WriteString(indent)
	b.WriteString(v.Name)
	switch v.Shape {
	case ast.ShapePositional:
		b.WriteByte('(')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Type)
		}
		b.WriteByte(')')
	case ast.ShapeNamed:
		if len(v.Fields) == 0 {
			b.WriteString(" {}")
			break
		}
		b.WriteString(" {\n")
		for _, f := range v.Fields {
			b.WriteString(indent)
			b.WriteString(indent)
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(f.Type)
			b.WriteString(",\n")
		}
		b.WriteString(indent)
		b.WriteByte('}')
	}
	b.WriteString(",\n")
}

// emitImpl renders the Display implementation. The impl header names the
// type without its generic parameters; generic declarations keep working
// only when the parameters are unused by the impl, which matches the
// dispatch-only body emitted here.
func emitImpl(b *strings.Builder, decl *ast.EnumDecl) {
	b.WriteString("impl ::core::fmt::Display for ")
	b.WriteString(decl.Name)
	b.WriteString(" {\n")
	b.WriteString(indent)
	b.WriteString("fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result {\n")
	b.WriteString(indent)
	b.WriteString(indent)
	b.WriteString("match self {\n")
	for i := range decl.Variants {
		emitArm(b, &decl.Variants[i])
	}
	b.WriteString(indent)
	b.WriteString(indent)
	b.WriteString("}\n")
	b.WriteString(indent)
	b.WriteString("}\n")
	b.WriteString("}\n")
}

// emitArm renders one match arm. A variant whose directive was rejected
// still gets an arm with an empty template so the expansion stays
// syntactically whole for tooling that reads it anyway.
func emitArm(b *strings.Builder, v *ast.Variant) {
	b.WriteString(indent)
	b.WriteString(indent)
	b.WriteString(indent)
	b.WriteString("Self::")
	b.WriteString(v.Name)

	set := bind.Of(v)
	switch v.Shape {
	case ast.ShapeUnit:
		b.WriteString(" {}")
	case ast.ShapePositional:
		b.WriteByte('(')
		b.WriteString(strings.Join(set.Names(), ", "))
		b.WriteByte(')')
	case ast.ShapeNamed:
		if set.Len() == 0 {
			b.WriteString(" {}")
			break
		}
		b.WriteString(" { ")
		b.WriteString(strings.Join(set.Names(), ", "))
		b.WriteString(" }")
	}

	b.WriteString(" => f.write_fmt(format_args!(")
	switch {
	case v.Directive == nil:
		b.WriteString(`""`)
	case v.Directive.Kind == ast.DirectiveWithArgs:
		b.WriteString(v.Directive.Template)
		for _, arg := range v.Directive.Args {
			b.WriteString(", ")
			b.WriteString(arg.Text)
		}
	default:
		b.WriteString(v.Directive.Template)
		for _, name := range set.Names()[:simpleArgCount(v.Directive, set.Len())] {
			b.WriteString(", ")
			b.WriteString(name)
		}
	}
	b.WriteString(")),\n")
}

// simpleArgCount reports how many ordinal bindings a simple-form template
// consumes through `{}` / `{N}` placeholders. Those placeholders index the
// call's argument list, not the match scope, so the arm must pass the
// consumed fields along after the literal.
func simpleArgCount(dir *ast.Directive, limit int) int {
	tpl, _ := template.Parse(dir.TemplateContent(), dir.ContentSpan(), nil)
	needed := 0
	implicit := 0
	for _, seg := range tpl.Placeholders() {
		switch seg.Kind {
		case template.SegImplicit:
			implicit++
			if implicit > needed {
				needed = implicit
			}
		case template.SegPositional:
			if seg.Index+1 > needed {
				needed = seg.Index + 1
			}
		}
	}
	if needed > limit {
		needed = limit
	}
	return needed
}
