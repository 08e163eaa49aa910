package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"calvin/internal/diag"
	"calvin/internal/source"
	"calvin/internal/trace"
)

// ScriptExt is the extension of reduction scripts.
const ScriptExt = ".cal"

// ListScripts returns every script under dir, sorted for a deterministic
// order.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
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

// CompileAll compiles every path on its own goroutine, at most jobs at a
// time. Each unit gets its own builder and tables; only the file set is
// shared, and it is fully loaded before the workers start. Results keep
// the order of paths. Files that fail to load get a result carrying an
// IO diagnostic.
func CompileAll(ctx context.Context, paths []string, opts Options, jobs int) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSet()
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	ids := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(paths))
	// A Timer is not safe for concurrent use.
	if jobs > 1 {
		opts.Timer = nil
	}

	driverSpan := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile-all", trace.CurrentSpan(ctx))
	defer driverSpan.End("")
	ctx = trace.WithSpan(ctx, driverSpan.ID())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(1)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErrs[i].Error()))
				results[i] = &Result{Path: path, Bag: bag}
				return nil
			}
			results[i] = Compile(gctx, fileSet, ids[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
