// Package driver replays reduction scripts against the semantic core,
// runs layout and collects diagnostics for the CLI.
package driver

import (
	"context"
	"errors"

	"calvin/internal/ast"
	"calvin/internal/diag"
	"calvin/internal/layout"
	"calvin/internal/observ"
	"calvin/internal/script"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/trace"
)

// Options tune one compilation.
type Options struct {
	Target layout.Target
	// MaxErrors bounds the diagnostics kept per file. Zero means one: the
	// compilation stops at the first error.
	MaxErrors int
	// NoLayout stops after the tree and tables are built.
	NoLayout bool
	Timer    *observ.Timer
}

// Result is everything a backend needs from one compilation unit.
type Result struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder
	Table   *symbols.Table
	Root    symbols.ScopeID
	Data    ast.NodeID // top-level statements
	Layout  *layout.Engine
	Bag     *diag.Bag
}

// OK reports whether the unit compiled without errors.
func (r *Result) OK() bool { return r != nil && !r.Bag.HasErrors() }

// CompileFile loads path into a fresh file set and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fs, nil, diag.Errorf(diag.IOLoadFileError, "failed to load %s: %v", path, err).With(path)
	}
	return fs, Compile(ctx, fs, id, opts), nil
}

// Compile replays the script in file id and lays the result out. The
// returned Result is never nil; failures end up in its Bag.
func Compile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	if opts.Target.Triple == "" {
		opts.Target = layout.DefaultTarget()
	}
	maxErrors := opts.MaxErrors
	if maxErrors <= 0 {
		maxErrors = 1
	}
	f := fs.Get(id)
	res := &Result{
		Path:   f.Path,
		FileID: id,
		Bag:    diag.NewBag(maxErrors),
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	fileSpan := source.Span{File: id}

	tracer := trace.FromContext(ctx)
	fileTrace := trace.Begin(tracer, trace.ScopeFile, "file:"+f.Path, trace.CurrentSpan(ctx))
	defer func() {
		detail := "ok"
		if res.Bag.HasErrors() {
			detail = "failed"
		}
		fileTrace.End(detail)
	}()

	var forms []*script.Datum
	err := measure(tracer, fileTrace.ID(), opts.Timer, "read", func() error {
		var err error
		forms, err = script.Parse(f)
		return err
	})
	if err != nil {
		report(reporter, tracer, fileSpan, err)
		return res
	}

	rp := newReplayer(tracer, fileTrace.ID(), f.Path)
	res.Builder, res.Table, res.Root, res.Data = rp.b, rp.t, rp.root, rp.data
	err = measure(tracer, fileTrace.ID(), opts.Timer, "build", func() error {
		for _, form := range forms {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := rp.topLevel(form); err != nil {
				report(reporter, tracer, form.Span, err)
				if res.Bag.Len() >= maxErrors {
					return err
				}
			}
		}
		return nil
	})
	if err != nil || res.Bag.HasErrors() || opts.NoLayout {
		return res
	}

	res.Layout = layout.New(opts.Target, res.Table)
	err = measure(tracer, fileTrace.ID(), opts.Timer, "layout", func() error {
		return res.Layout.Assign(res.Root)
	})
	if err != nil {
		report(reporter, tracer, fileSpan, err)
	}
	return res
}

func measure(t trace.Tracer, parent uint64, timer *observ.Timer, name string, fn func() error) error {
	span := trace.Begin(t, trace.ScopePass, name, parent)
	err := timer.Measure(name, fn)
	if err != nil {
		span.WithExtra("error", err.Error())
	}
	span.End("")
	return err
}

func report(r diag.Reporter, t trace.Tracer, fallback source.Span, err error) {
	trace.Point(t, trace.ScopeError, 0, "error", err.Error())
	var le *layout.LayoutError
	if errors.As(err, &le) {
		r.Report(le.Code(), diag.SevError, fallback, le.Error(), nil)
		return
	}
	diag.ReportErr(r, fallback, err)
}
