package validate_test

import (
	"strings"
	"testing"

	"displaystr/internal/ast"
	"displaystr/internal/diag"
	"displaystr/internal/lexer"
	"displaystr/internal/parser"
	"displaystr/internal/source"
	"displaystr/internal/validate"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, len(r.diagnostics))
	for i, d := range r.diagnostics {
		out[i] = d.Code
	}
	return out
}

func (r *testReporter) count(code diag.Code) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// parseDecl parses a single well-formed declaration; syntax errors fail the
// test so validation results stay about validation.
func parseDecl(t *testing.T, input string) *ast.EnumDecl {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.dsl", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{MaxErrors: 64, Reporter: rep})
	if res.Fatal || bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	if len(res.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(res.Decls))
	}
	return &res.Decls[0]
}

func check(t *testing.T, input string, docMode bool) (validate.Result, *testReporter) {
	t.Helper()
	decl := parseDecl(t, input)
	rep := &testReporter{}
	res := validate.Decl(decl, validate.Options{DocMode: docMode, Reporter: rep})
	return res, rep
}

func TestValidCanonicalDeclaration(t *testing.T) {
	res, rep := check(t, `
pub enum DataStoreError {
    Disconnect(std::io::Error) = "data store disconnected",
    Redaction(String) = "the data for key `+"`{_0}`"+` is not available",
    InvalidHeader { expected: String, found: String } = "invalid header (expected {expected:?}, found {found:?})",
    Unknown = "unknown data store error",
}`, false)
	if !res.OK {
		t.Fatalf("expected clean validation, got %v", rep.codes())
	}
	if len(res.Variants) != 4 {
		t.Fatalf("expected 4 variants, got %d", len(res.Variants))
	}
	if res.Variants[2].Bindings.Len() != 2 {
		t.Errorf("InvalidHeader bindings: %d", res.Variants[2].Bindings.Len())
	}
}

func TestMissingDirective(t *testing.T) {
	res, rep := check(t, `enum E { NoTemplate, Ok = "fine" }`, false)
	if res.OK {
		t.Fatal("expected validation failure")
	}
	if rep.count(diag.DirMissing) != 1 {
		t.Fatalf("expected one DirMissing, got %v", rep.codes())
	}
	if !strings.Contains(rep.diagnostics[0].Message, "NoTemplate") {
		t.Errorf("message should name the variant: %q", rep.diagnostics[0].Message)
	}
}

func TestUnknownField(t *testing.T) {
	res, rep := check(t, `enum E { V { x: u32 } = "value is {nonexistent}" }`, false)
	if res.OK {
		t.Fatal("expected validation failure")
	}
	if rep.count(diag.TplUnknownField) != 1 {
		t.Fatalf("expected one TplUnknownField, got %v", rep.codes())
	}
}

func TestOrdinalResolvesOnTupleVariant(t *testing.T) {
	res, rep := check(t, `enum E { V(u32, u32) = "{_0} and {_1}" }`, false)
	if !res.OK {
		t.Fatalf("ordinal placeholders must resolve on tuple variants: %v", rep.codes())
	}
}

func TestIndexOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"explicit index on one field", `enum E { V(u32) = "{1}" }`, 1},
		{"implicit on unit", `enum E { V = "{}" }`, 1},
		{"implicit on named", `enum E { V { x: u32 } = "{}" }`, 1},
		{"second implicit exceeds fields", `enum E { V(u32) = "{} {}" }`, 1},
		{"in range", `enum E { V(u32, u32) = "{0} {1}" }`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rep := check(t, tt.input, false)
			got := rep.count(diag.TplIndexOutOfRange)
			if got != tt.count {
				t.Errorf("expected %d TplIndexOutOfRange, got %v", tt.count, rep.codes())
			}
			if (tt.count == 0) != res.OK {
				t.Errorf("OK: %v with %v", res.OK, rep.codes())
			}
		})
	}
}

func TestWithArgsCapacityIsArgumentCount(t *testing.T) {
	// Two args: {0} and {1} are fine even though the variant has one field.
	res, rep := check(t, `enum E { V(String) = ("{0} {1}", _0.len(), _0.clone()) }`, false)
	if !res.OK {
		t.Fatalf("expected clean validation, got %v", rep.codes())
	}

	res, rep = check(t, `enum E { V(String, String) = ("{1}", _0.len()) }`, false)
	if res.OK {
		t.Fatal("expected validation failure")
	}
	if rep.count(diag.TplIndexOutOfRange) != 1 {
		t.Fatalf("expected one TplIndexOutOfRange, got %v", rep.codes())
	}
	if !strings.Contains(rep.diagnostics[0].Message, "argument") {
		t.Errorf("message should speak of arguments: %q", rep.diagnostics[0].Message)
	}
}

func TestMixedPlaceholders(t *testing.T) {
	res, rep := check(t, `enum E { V(u32, u32) = "{} {0} {}" }`, false)
	if res.OK {
		t.Fatal("expected validation failure")
	}
	if rep.count(diag.TplMixedPlaceholders) != 1 {
		t.Errorf("mixed style reported once per template, got %v", rep.codes())
	}
}

func TestDocConflict(t *testing.T) {
	input := `
enum E {
    /// Already documented.
    V = "template",
}`
	res, rep := check(t, input, true)
	if res.OK {
		t.Fatal("expected validation failure in doc mode")
	}
	if rep.count(diag.DirDocConflict) != 1 {
		t.Fatalf("expected one DirDocConflict, got %v", rep.codes())
	}

	res, rep = check(t, input, false)
	if !res.OK {
		t.Fatalf("variant docs only conflict in doc mode: %v", rep.codes())
	}
}

func TestAccumulatesAcrossVariants(t *testing.T) {
	_, rep := check(t, `
enum E {
    A,
    B { x: u32 } = "{missing}",
    C(u32) = "{3}",
}`, false)
	if rep.count(diag.DirMissing) != 1 {
		t.Errorf("expected DirMissing, got %v", rep.codes())
	}
	if rep.count(diag.TplUnknownField) != 1 {
		t.Errorf("expected TplUnknownField, got %v", rep.codes())
	}
	if rep.count(diag.TplIndexOutOfRange) != 1 {
		t.Errorf("expected TplIndexOutOfRange, got %v", rep.codes())
	}
}

func TestBadTemplateSurfacesThroughValidation(t *testing.T) {
	res, rep := check(t, `enum E { V = "oops {unclosed" }`, false)
	if res.OK {
		t.Fatal("expected validation failure")
	}
	if rep.count(diag.TplUnmatchedBrace) != 1 {
		t.Errorf("expected TplUnmatchedBrace, got %v", rep.codes())
	}
}
