package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calvin/internal/diag"
	"calvin/internal/diagfmt"
	"calvin/internal/driver"
	"calvin/internal/observ"
	"calvin/internal/source"
)

// errFailed is returned after diagnostics have already been printed.
var errFailed = errors.New("compilation failed")

type compilation struct {
	fs      *source.FileSet
	results []*driver.Result
	timer   *observ.Timer
}

func compileInputs(cmd *cobra.Command, s *settings, paths []string, noLayout bool) (*compilation, error) {
	c := &compilation{}
	if s.timings {
		c.timer = observ.NewTimer()
	}
	opts := driver.Options{
		Target:    s.target,
		MaxErrors: s.maxErrors,
		NoLayout:  noLayout,
		Timer:     c.timer,
	}
	var err error
	c.fs, c.results, err = driver.CompileAll(cmd.Context(), paths, opts, s.jobs)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *compilation) ok() bool {
	for _, r := range c.results {
		if !r.OK() {
			return false
		}
	}
	return true
}

// printDiagnostics merges every unit's bag and renders it to stderr.
func (c *compilation) printDiagnostics(s *settings) error {
	all := diag.NewBag(0)
	for _, r := range c.results {
		all.Merge(r.Bag)
	}
	if all.Len() == 0 {
		return nil
	}
	all.Sort()
	switch s.diagFormat {
	case "json":
		return diagfmt.JSON(os.Stderr, all, c.fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "short":
		diagfmt.Short(os.Stderr, all, c.fs, true)
	default:
		diagfmt.Pretty(os.Stderr, all, c.fs, diagfmt.PrettyOpts{Color: s.color, ShowNotes: true})
	}
	return nil
}

func (c *compilation) printTimings(cmd *cobra.Command, s *settings) {
	if !s.timings || c.timer == nil {
		return
	}
	if len(c.timer.Report().Phases) == 0 {
		// CompileAll drops the timer when it runs units in parallel
		fmt.Fprintln(cmd.ErrOrStderr(), "timings: unavailable with --jobs > 1")
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), c.timer.Summary())
}
