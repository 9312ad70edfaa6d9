package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"displaystr/internal/diag"
	"displaystr/internal/source"
)

// ExpandDirResult is the outcome for one file of a directory run.
type ExpandDirResult struct {
	Path   string
	FileID source.FileID
	Output string
	Bag    *diag.Bag
	Cached bool
}

// ListDeclFiles returns the sorted list of *.dsl files under dir.
func ListDeclFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".dsl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every *.dsl file under dir in parallel. Results come
// back in sorted-path order regardless of scheduling, so two runs over the
// same tree produce identical output. A file that fails to load yields an
// I/O diagnostic in its slot instead of failing the whole run.
func ExpandDir(ctx context.Context, dir string, jobs int, opts Options) (*source.FileSet, []ExpandDirResult, error) {
	files, err := ListDeclFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slot per file; indices are unique per goroutine, no mutex needed.
	results := make([]ExpandDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = ExpandDirResult{Path: path, Bag: bag}
				opts.emit(path, StatusError)
				return nil
			}

			opts.emit(path, StatusExpanding)
			fileID := fileIDs[path]
			res, err := ExpandIn(fileSet, fileID, opts)
			if err != nil {
				opts.emit(path, StatusError)
				return err
			}
			results[i] = ExpandDirResult{
				Path:   path,
				FileID: fileID,
				Output: res.Output,
				Bag:    res.Bag,
				Cached: res.Cached,
			}
			switch {
			case res.Bag.HasErrors():
				opts.emit(path, StatusError)
			case res.Cached:
				opts.emit(path, StatusCached)
			default:
				opts.emit(path, StatusDone)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
