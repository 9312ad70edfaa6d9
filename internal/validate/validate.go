// Package validate checks parsed declarations variant by variant.
//
// Validation never stops at the first defect: every variant is examined
// and every defect reported in one run, so a single pass over the output
// shows everything that needs fixing.
package validate

import (
	"strconv"

	"displaystr/internal/ast"
	"displaystr/internal/bind"
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/template"
)

// Options configures one validation run.
type Options struct {
	// DocMode marks templates destined to become doc comments; a variant
	// that already carries its own doc comment conflicts with that.
	DocMode  bool
	Reporter diag.Reporter
}

// VariantInfo is the validated view of one variant: its bindings and its
// scanned template, ready for the emitter.
type VariantInfo struct {
	Variant  *ast.Variant
	Bindings bind.Set
	Template template.Template
}

// Result carries the validated variants of one declaration. Variants with
// defective directives still appear, with whatever was salvageable, so the
// emitter can be exercised on partial input by tooling that wants to.
type Result struct {
	Variants []VariantInfo
	OK       bool
}

// Decl validates one declaration.
func Decl(decl *ast.EnumDecl, opts Options) Result {
	res := Result{OK: true}
	v := validator{opts: opts, res: &res}
	for i := range decl.Variants {
		v.variant(&decl.Variants[i])
	}
	return res
}

type validator struct {
	opts Options
	res  *Result
}

func (v *validator) report(code diag.Code, sp source.Span, msg string) {
	v.res.OK = false
	if v.opts.Reporter != nil {
		v.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (v *validator) variant(variant *ast.Variant) {
	info := VariantInfo{
		Variant:  variant,
		Bindings: bind.Of(variant),
	}
	defer func() { v.res.Variants = append(v.res.Variants, info) }()

	if v.opts.DocMode && len(variant.Doc) > 0 {
		v.report(diag.DirDocConflict, variant.NameSpan,
			"variant `"+variant.Name+"` already has a doc comment; remove it or drop doc generation")
	}

	dir := variant.Directive
	if dir == nil {
		v.report(diag.DirMissing, variant.NameSpan,
			"variant `"+variant.Name+"` has no display template")
		return
	}

	tpl, ok := template.Parse(dir.TemplateContent(), dir.ContentSpan(), v.opts.Reporter)
	if !ok {
		v.res.OK = false
	}
	info.Template = tpl

	v.placeholders(variant, info.Bindings, dir, tpl)
}

// placeholders checks every placeholder of one template against the
// variant's bindings or, for parenthesized directives, its argument list.
func (v *validator) placeholders(variant *ast.Variant, set bind.Set, dir *ast.Directive, tpl template.Template) {
	// Positional capacity: argument count for the parenthesized form,
	// field count for the simple form on a tuple variant, zero otherwise.
	capacity := 0
	subject := "field"
	switch {
	case dir.Kind == ast.DirectiveWithArgs:
		capacity = len(dir.Args)
		subject = "argument"
	case variant.Shape == ast.ShapePositional:
		capacity = set.Len()
	}

	if tpl.HasImplicit() && tpl.HasExplicitIndex() {
		for _, seg := range tpl.Placeholders() {
			if seg.Kind == template.SegImplicit {
				v.report(diag.TplMixedPlaceholders, seg.Span,
					"cannot mix `{}` with `{N}` in one template; index every placeholder or none")
				break
			}
		}
	}

	implicit := 0
	for _, seg := range tpl.Placeholders() {
		switch seg.Kind {
		case template.SegNamed:
			if !set.Has(seg.Text) {
				v.report(diag.TplUnknownField, seg.Span,
					"variant `"+variant.Name+"` has no field `"+seg.Text+"`")
			}
		case template.SegPositional:
			if seg.Index >= capacity {
				v.report(diag.TplIndexOutOfRange, seg.Span,
					"placeholder {"+strconv.Itoa(seg.Index)+"} is out of range: "+
						countPhrase(capacity, subject))
			}
		case template.SegImplicit:
			if implicit >= capacity {
				v.report(diag.TplIndexOutOfRange, seg.Span,
					"placeholder {} has nothing to consume: "+countPhrase(capacity, subject))
			}
			implicit++
		}
	}
}

func countPhrase(n int, subject string) string {
	switch n {
	case 0:
		return "no " + subject + "s are available"
	case 1:
		return "only 1 " + subject + " is available"
	}
	return "only " + strconv.Itoa(n) + " " + subject + "s are available"
}
