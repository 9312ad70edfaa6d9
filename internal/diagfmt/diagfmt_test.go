package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"displaystr/internal/diag"
	"displaystr/internal/diagfmt"
	"displaystr/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dsl", []byte("enum E {\n    V = \"{nope}\",\n}\n"))

	bag := diag.NewBag(8)
	// "nope" sits on line 2 inside the template.
	bag.Add(diag.NewError(diag.TplUnknownField, source.Span{File: id, Start: 18, End: 24}, "variant `V` has no field `nope`").
		WithNote(source.Span{File: id, Start: 13, End: 14}, "variant declared here"))
	return bag, fs
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	bag, fs := makeBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})

	out := buf.String()
	if !strings.HasPrefix(out, "test.dsl:2:10: ERROR TPL3101: variant `V` has no field `nope`\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "    V = \"{nope}\",\n") {
		t.Errorf("source line missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Errorf("underline missing:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes shown without ShowNotes:\n%s", out)
	}
}

func TestPrettyShowNotes(t *testing.T) {
	bag, fs := makeBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename, ShowNotes: true})

	if !strings.Contains(buf.String(), "note: variant declared here") {
		t.Errorf("note missing:\n%s", buf.String())
	}
}

func TestPrettyZeroSpanLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("test.dsl", []byte(""))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if !strings.HasPrefix(buf.String(), "<input>: ") {
		t.Errorf("zero span must render as <input>:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := makeBag(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         diagfmt.PathModeBasename,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count: %d with %d diagnostics", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "TPL3101" || d.Severity != "ERROR" {
		t.Errorf("code/severity: %q %q", d.Code, d.Severity)
	}
	if d.Location.File != "test.dsl" || d.Location.StartLine != 2 || d.Location.StartCol != 10 {
		t.Errorf("location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "variant declared here" {
		t.Errorf("notes: %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dsl", []byte("enum E {}"))
	bag := diag.NewBag(8)
	for i := uint32(0); i < 5; i++ {
		bag.Add(diag.NewError(diag.DirMissing, source.Span{File: id, Start: i, End: i + 1}, "x"))
	}

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("expected truncation to 2, got %d", out.Count)
	}
	if bag.Len() != 5 {
		t.Errorf("truncation must not touch the bag: %d", bag.Len())
	}
}
