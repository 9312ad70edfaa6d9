package codegen_test

import (
	"strings"
	"testing"

	"displaystr/internal/ast"
	"displaystr/internal/codegen"
	"displaystr/internal/diag"
	"displaystr/internal/lexer"
	"displaystr/internal/parser"
	"displaystr/internal/source"
)

func parseDecls(t *testing.T, input string) []ast.EnumDecl {
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
	return res.Decls
}

func emit(t *testing.T, input string, opts codegen.Options) string {
	t.Helper()
	return codegen.Emit(parseDecls(t, input), opts)
}

func expectOutput(t *testing.T, got string, wantLines []string) {
	t.Helper()
	want := strings.Join(wantLines, "\n") + "\n"
	if got != want {
		t.Errorf("output mismatch\n--- want ---\n%s--- got ---\n%s", want, got)
	}
}

func TestEmitCanonical(t *testing.T) {
	got := emit(t, `
pub enum DataStoreError {
    Disconnect(std::io::Error) = "data store disconnected",
    Redaction(String) = "the data for key `+"`{_0}`"+` is not available",
    InvalidHeader {
        expected: String,
        found: String,
    } = "invalid header (expected {expected:?}, found {found:?})",
    Unknown = "unknown data store error",
}`, codegen.Options{})

	expectOutput(t, got, []string{
		"pub enum DataStoreError {",
		"    Disconnect(std::io::Error),",
		"    Redaction(String),",
		"    InvalidHeader {",
		"        expected: String,",
		"        found: String,",
		"    },",
		"    Unknown,",
		"}",
		"",
		"impl ::core::fmt::Display for DataStoreError {",
		"    fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result {",
		"        match self {",
		"            Self::Disconnect(_0) => f.write_fmt(format_args!(\"data store disconnected\")),",
		"            Self::Redaction(_0) => f.write_fmt(format_args!(\"the data for key `{_0}` is not available\")),",
		"            Self::InvalidHeader { expected, found } => f.write_fmt(format_args!(\"invalid header (expected {expected:?}, found {found:?})\")),",
		"            Self::Unknown {} => f.write_fmt(format_args!(\"unknown data store error\")),",
		"        }",
		"    }",
		"}",
	})
}

func TestEmitWithArgs(t *testing.T) {
	got := emit(t, `
enum E {
    Redaction(String, Vec<String>) = ("recovered: {}", _1.join("+")),
}`, codegen.Options{})

	want := `Self::Redaction(_0, _1) => f.write_fmt(format_args!("recovered: {}", _1.join("+"))),`
	if !strings.Contains(got, want) {
		t.Errorf("expected arm %q in:\n%s", want, got)
	}
}

func TestEmitSimplePositionalArgs(t *testing.T) {
	// `{}` / `{N}` in a simple directive index the call's argument list, so
	// the consumed fields must ride along after the literal.
	got := emit(t, `
enum E {
    V(String) = "value: {}",
    W(String, String) = "pair: {0} {1}",
    Partial(String, String) = "first: {}",
    Named(u32) = "named: {_0}",
}`, codegen.Options{})

	for _, want := range []string{
		`Self::V(_0) => f.write_fmt(format_args!("value: {}", _0)),`,
		`Self::W(_0, _1) => f.write_fmt(format_args!("pair: {0} {1}", _0, _1)),`,
		`Self::Partial(_0, _1) => f.write_fmt(format_args!("first: {}", _0)),`,
		`Self::Named(_0) => f.write_fmt(format_args!("named: {_0}")),`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected arm %q in:\n%s", want, got)
		}
	}
}

func TestEmitDocMode(t *testing.T) {
	got := emit(t, `
enum E {
    #[deprecated]
    V(u32) = "value {{escaped}} is {_0}",
}`, codegen.Options{Doc: true})

	expectOutput(t, got, []string{
		"enum E {",
		"    #[deprecated]",
		"    /// value {{escaped}} is {_0}",
		"    V(u32),",
		"}",
		"",
		"impl ::core::fmt::Display for E {",
		"    fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result {",
		"        match self {",
		"            Self::V(_0) => f.write_fmt(format_args!(\"value {{escaped}} is {_0}\")),",
		"        }",
		"    }",
		"}",
	})
}

func TestEmitDocModeOffLeavesNoComment(t *testing.T) {
	got := emit(t, `enum E { V = "hidden" }`, codegen.Options{})
	if strings.Contains(got, "/// hidden") {
		t.Errorf("doc comment emitted without doc mode:\n%s", got)
	}
}

func TestEmitMissingDirectiveDummyArm(t *testing.T) {
	// The variant is invalid, but its arm keeps the expansion syntactically
	// whole.
	got := emit(t, `enum E { Broken, Ok = "fine" }`, codegen.Options{})
	want := `Self::Broken {} => f.write_fmt(format_args!("")),`
	if !strings.Contains(got, want) {
		t.Errorf("expected dummy arm %q in:\n%s", want, got)
	}
}

func TestEmitEmptyDelimitedShapes(t *testing.T) {
	got := emit(t, `
enum E {
    A = "a",
    B() = "b",
    C {} = "c",
}`, codegen.Options{})

	for _, want := range []string{
		"    A,\n",
		"    B(),\n",
		"    C {},\n",
		"Self::A {} =>",
		"Self::B() =>",
		"Self::C {} =>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestEmitImplHeaderDropsGenerics(t *testing.T) {
	got := emit(t, `
pub enum Wrapper<T> where T: Display {
    Value(T) = "{_0}",
}`, codegen.Options{})

	if !strings.Contains(got, "pub enum Wrapper<T> where T: Display {") {
		t.Errorf("declaration header lost its generics:\n%s", got)
	}
	if !strings.Contains(got, "impl ::core::fmt::Display for Wrapper {") {
		t.Errorf("impl header must name the bare type:\n%s", got)
	}
}

func TestEmitDocAndAttrsPreserved(t *testing.T) {
	got := emit(t, `
/// Error type.
#[derive(Debug)]
enum E {
    /// Known failure.
    V = "v",
}`, codegen.Options{})

	for _, want := range []string{
		"/// Error type.\n#[derive(Debug)]\nenum E {",
		"    /// Known failure.\n    V,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestEmitMultipleDeclarations(t *testing.T) {
	got := emit(t, `
enum A { X = "x" }
enum B { Y = "y" }
`, codegen.Options{})

	if !strings.Contains(got, "}\n\nenum B {") {
		t.Errorf("declarations must be separated by one blank line:\n%s", got)
	}
}

func TestEmitDeterministic(t *testing.T) {
	decls := parseDecls(t, `
enum E {
    A(u32) = "{_0}",
    B { x: u32 } = "{x}",
}`)
	first := codegen.Emit(decls, codegen.Options{Doc: true})
	second := codegen.Emit(decls, codegen.Options{Doc: true})
	if first != second {
		t.Error("repeated emission must be byte-identical")
	}
}
