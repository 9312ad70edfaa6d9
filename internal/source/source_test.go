package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"displaystr/internal/source"
)

func TestSpanCoverAndLen(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 10}
	b := source.Span{File: 0, Start: 8, End: 15}

	covered := a.Cover(b)
	if covered.Start != 4 || covered.End != 15 {
		t.Errorf("cover: %+v", covered)
	}
	if covered.Len() != 11 {
		t.Errorf("len: %d", covered.Len())
	}

	other := source.Span{File: 1, Start: 0, End: 3}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file cover must be a no-op: %+v", got)
	}

	if !(source.Span{Start: 7, End: 7}).Empty() {
		t.Error("zero-length span must be empty")
	}
}

func TestSpanShiftRight(t *testing.T) {
	s := source.Span{File: 2, Start: 3, End: 6}.ShiftRight(10)
	if s.File != 2 || s.Start != 13 || s.End != 16 {
		t.Errorf("shifted: %+v", s)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dsl", []byte("enum E {\n    A = \"a\",\n}\n"))

	// "A" sits on line 2, column 5.
	start, _ := fs.Resolve(source.Span{File: id, Start: 13, End: 14})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("resolve: %+v", start)
	}

	start, _ = fs.Resolve(source.Span{File: id, Start: 0, End: 4})
	if start.Line != 1 || start.Col != 1 {
		t.Errorf("resolve at origin: %+v", start)
	}
}

func TestFileGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dsl", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("line %d: got %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAddVirtualSetsFlagAndHash(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dsl", []byte("enum E {}"))
	f := fs.Get(id)

	if f.Flags&source.FileVirtual == 0 {
		t.Error("virtual flag missing")
	}
	if f.Hash == ([32]byte{}) {
		t.Error("hash not computed")
	}

	other := fs.AddVirtual("other.dsl", []byte("enum F {}"))
	if fs.Get(other).Hash == f.Hash {
		t.Error("different content must hash differently")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.dsl")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("enum E {\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if string(f.Content) != "enum E {\n}\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("BOM flag missing")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("CRLF flag missing")
	}
}

func TestGetByPath(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.dsl", []byte("enum A {}"))
	if _, ok := fs.GetByPath("a.dsl"); !ok {
		t.Error("expected hit for a.dsl")
	}
	if _, ok := fs.GetByPath("missing.dsl"); ok {
		t.Error("expected miss for missing.dsl")
	}
}
