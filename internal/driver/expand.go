// Package driver wires the pipeline: load, lex, parse, validate, emit.
// Each file is processed with exclusively-owned state; the driver is the
// only place where phases meet.
package driver

import (
	"fortio.org/safecast"

	"displaystr/internal/codegen"
	"displaystr/internal/diag"
	"displaystr/internal/lexer"
	"displaystr/internal/parser"
	"displaystr/internal/source"
	"displaystr/internal/validate"
)

// Options configures one expansion run.
type Options struct {
	// Doc generates `///` comments from templates on the stripped output.
	Doc bool
	// MaxDiagnostics bounds the bag.
	MaxDiagnostics int
	// Cache, when non-nil, short-circuits clean re-runs of unchanged input.
	Cache *DiskCache
	// Events, when non-nil, receives per-file progress during ExpandDir.
	// The caller owns the channel and closes it after the run.
	Events chan<- Event
}

// ExpandResult is the outcome for one file. Output is empty when the bag
// holds errors: a failed declaration produces diagnostics, never partial
// code.
type ExpandResult struct {
	FileSet *source.FileSet
	File    *source.File
	Output  string
	Bag     *diag.Bag
	// Cached marks a result served from the disk cache.
	Cached bool
}

// Expand loads path and runs the full pipeline over it.
func Expand(path string, opts Options) (*ExpandResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ExpandIn(fs, fileID, opts)
}

// ExpandIn runs the pipeline over an already-loaded file. Virtual files
// added with AddVirtual go through here.
func ExpandIn(fs *source.FileSet, fileID source.FileID, opts Options) (*ExpandResult, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)

	if opts.Cache != nil {
		var payload CachePayload
		hit, err := opts.Cache.Get(cacheKey(file, opts), &payload)
		if err == nil && hit && payload.Schema == cacheSchemaVersion {
			return &ExpandResult{
				FileSet: fs,
				File:    file,
				Output:  payload.Output,
				Bag:     bag,
				Cached:  true,
			}, nil
		}
		// Cache trouble degrades to a miss.
	}

	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := parser.ParseFile(lx, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  rep,
	})

	if !res.Fatal {
		for i := range res.Decls {
			validate.Decl(&res.Decls[i], validate.Options{
				DocMode:  opts.Doc,
				Reporter: rep,
			})
		}
	}

	bag.Sort()
	bag.Dedup()

	out := &ExpandResult{FileSet: fs, File: file, Bag: bag}
	if !res.Fatal && !bag.HasErrors() {
		out.Output = codegen.Emit(res.Decls, codegen.Options{Doc: opts.Doc})
		if opts.Cache != nil {
			// Best effort; a failed write only costs the next run a miss.
			_ = opts.Cache.Put(cacheKey(file, opts), &CachePayload{
				Schema: cacheSchemaVersion,
				Output: out.Output,
			})
		}
	}
	return out, nil
}
