package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"displaystr/internal/diag"
	"displaystr/internal/driver"
	"displaystr/internal/source"
)

const cleanDecl = `enum DataStoreError {
    Disconnect(std::io::Error) = "data store disconnected",
    Unknown = "unknown data store error",
}
`

func expandVirtual(t *testing.T, input string, opts driver.Options) *driver.ExpandResult {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.dsl", []byte(input))
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = 64
	}
	res, err := driver.ExpandIn(fs, fileID, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestExpandClean(t *testing.T) {
	res := expandVirtual(t, cleanDecl, driver.Options{})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !strings.Contains(res.Output, "impl ::core::fmt::Display for DataStoreError {") {
		t.Errorf("output missing impl:\n%s", res.Output)
	}
	if res.Cached {
		t.Error("no cache configured, result cannot be cached")
	}
}

func TestExpandErrorsSuppressOutput(t *testing.T) {
	res := expandVirtual(t, `enum E { V { x: u32 } = "{missing}" }`, driver.Options{})
	if !res.Bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if res.Output != "" {
		t.Errorf("defective input must not produce output, got:\n%s", res.Output)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.TplUnknownField {
			found = true
		}
	}
	if !found {
		t.Errorf("expected TplUnknownField, got %v", res.Bag.Items())
	}
}

func TestExpandDocModeChangesOutput(t *testing.T) {
	plain := expandVirtual(t, cleanDecl, driver.Options{})
	doc := expandVirtual(t, cleanDecl, driver.Options{Doc: true})
	if !strings.Contains(doc.Output, "/// data store disconnected") {
		t.Errorf("doc mode output missing template comment:\n%s", doc.Output)
	}
	if plain.Output == doc.Output {
		t.Error("doc mode must change the output")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{MaxDiagnostics: 64, Cache: cache}

	first := expandVirtual(t, cleanDecl, opts)
	if first.Cached {
		t.Fatal("first run cannot hit the cache")
	}

	second := expandVirtual(t, cleanDecl, opts)
	if !second.Cached {
		t.Fatal("second run over identical input must hit the cache")
	}
	if second.Output != first.Output {
		t.Error("cached output must match the original")
	}
}

func TestDiskCacheKeyedByDocOption(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	expandVirtual(t, cleanDecl, driver.Options{MaxDiagnostics: 64, Cache: cache})
	doc := expandVirtual(t, cleanDecl, driver.Options{MaxDiagnostics: 64, Cache: cache, Doc: true})
	if doc.Cached {
		t.Error("a different doc setting must miss the cache")
	}
	if !strings.Contains(doc.Output, "///") {
		t.Errorf("doc output missing comments:\n%s", doc.Output)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{MaxDiagnostics: 64, Cache: cache}

	expandVirtual(t, cleanDecl, opts)
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if expandVirtual(t, cleanDecl, opts).Cached {
		t.Error("expected a miss after DropAll")
	}
}

func TestExpandErrorsNeverCached(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{MaxDiagnostics: 64, Cache: cache}
	bad := `enum E { V = "{nope}" }`

	expandVirtual(t, bad, opts)
	res := expandVirtual(t, bad, opts)
	if res.Cached {
		t.Error("failed expansions must not be served from the cache")
	}
	if !res.Bag.HasErrors() {
		t.Error("expected errors on the re-run")
	}
}

func writeDeclFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListDeclFiles(t *testing.T) {
	dir := writeDeclFiles(t, map[string]string{
		"b.dsl":          `enum B { X = "x" }`,
		"a.dsl":          `enum A { X = "x" }`,
		"nested/c.dsl":   `enum C { X = "x" }`,
		"ignored.txt":    "not a declaration",
		"nested/note.md": "also not",
	})

	files, err := driver.ListDeclFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	want := []string{
		filepath.Join(dir, "a.dsl"),
		filepath.Join(dir, "b.dsl"),
		filepath.Join(dir, "nested", "c.dsl"),
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestExpandDir(t *testing.T) {
	dir := writeDeclFiles(t, map[string]string{
		"a.dsl": `enum A { X = "x" }`,
		"b.dsl": `enum B { V = "{broken}" }`,
		"c.dsl": `enum C { Y = "y" }`,
	})

	_, results, err := driver.ExpandDir(context.Background(), dir, 4, driver.Options{MaxDiagnostics: 64})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Sorted-path order regardless of scheduling.
	for i, name := range []string{"a.dsl", "b.dsl", "c.dsl"} {
		if filepath.Base(results[i].Path) != name {
			t.Errorf("result %d: got %q, want %q", i, results[i].Path, name)
		}
	}

	if results[0].Output == "" || results[0].Bag.HasErrors() {
		t.Error("a.dsl should expand cleanly")
	}
	if results[1].Output != "" || !results[1].Bag.HasErrors() {
		t.Error("b.dsl should fail with diagnostics and no output")
	}
	if results[2].Output == "" {
		t.Error("c.dsl should expand despite b.dsl failing")
	}
}

func TestExpandDirEmptyTree(t *testing.T) {
	_, results, err := driver.ExpandDir(context.Background(), t.TempDir(), 2, driver.Options{MaxDiagnostics: 64})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestExpandDirEvents(t *testing.T) {
	dir := writeDeclFiles(t, map[string]string{
		"a.dsl": `enum A { X = "x" }`,
		"b.dsl": `enum B { V = "{broken}" }`,
	})

	events := make(chan driver.Event, 16)
	_, _, err := driver.ExpandDir(context.Background(), dir, 1, driver.Options{
		MaxDiagnostics: 64,
		Events:         events,
	})
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	last := make(map[string]driver.Status)
	for ev := range events {
		last[filepath.Base(ev.Path)] = ev.Status
	}
	if last["a.dsl"] != driver.StatusDone {
		t.Errorf("a.dsl final status: %v", last["a.dsl"])
	}
	if last["b.dsl"] != driver.StatusError {
		t.Errorf("b.dsl final status: %v", last["b.dsl"])
	}
}

func TestExpandFromDisk(t *testing.T) {
	dir := writeDeclFiles(t, map[string]string{"a.dsl": cleanDecl})
	res, err := driver.Expand(filepath.Join(dir, "a.dsl"), driver.Options{MaxDiagnostics: 64})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() || res.Output == "" {
		t.Errorf("expected clean expansion, got %v", res.Bag.Items())
	}
}

func TestTokenize(t *testing.T) {
	dir := writeDeclFiles(t, map[string]string{"a.dsl": `enum A { X = "x" }`})
	res, err := driver.Tokenize(filepath.Join(dir, "a.dsl"), 64)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if len(res.Tokens) == 0 {
		t.Fatal("expected tokens")
	}
}
