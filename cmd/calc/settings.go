package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calvin/internal/diag"
	"calvin/internal/layout"
	"calvin/internal/project"
	"calvin/internal/trace"
)

// settings is the effective configuration of one command: built-in
// defaults, then calvin.toml, then flags.
type settings struct {
	manifest   project.Manifest
	hasProject bool

	target     layout.Target
	output     string
	comment    bool
	jobs       int
	traceLevel trace.Level
	traceOut   string
	maxErrors  int
	diagFormat string
	color      bool
	quiet      bool
	timings    bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	m, found, err := project.Discover(".")
	if err != nil {
		return nil, err
	}
	s := &settings{
		manifest:   m,
		hasProject: found,
		output:     m.Build.Output,
		comment:    m.Build.Comment,
		jobs:       m.Build.Jobs,
		traceOut:   m.Trace.Output,
	}

	pf := cmd.Root().PersistentFlags()
	triple := m.Build.Target
	if pf.Changed("target") {
		if triple, err = pf.GetString("target"); err != nil {
			return nil, fmt.Errorf("failed to get target flag: %w", err)
		}
	}
	t, ok := layout.LookupTarget(triple)
	if !ok {
		return nil, diag.Errorf(diag.ProjBadTarget, "unknown target %q (known: %s)",
			triple, strings.Join(layout.Targets(), ", ")).With(triple)
	}
	s.target = t

	levelStr := m.Trace.Level
	if pf.Changed("trace-level") {
		if levelStr, err = pf.GetString("trace-level"); err != nil {
			return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
	}
	if debug, _ := pf.GetBool("debug"); debug {
		levelStr = "debug"
	}
	if s.traceLevel, err = trace.ParseLevel(levelStr); err != nil {
		return nil, err
	}
	if pf.Changed("trace") {
		s.traceOut, _ = pf.GetString("trace")
	}

	if s.maxErrors, err = pf.GetInt("max-errors"); err != nil {
		return nil, fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	if s.diagFormat, err = pf.GetString("diag-format"); err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch s.diagFormat {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", s.diagFormat)
	}
	s.quiet, _ = pf.GetBool("quiet")
	s.timings, _ = pf.GetBool("timings")

	colorFlag, _ := pf.GetString("color")
	if s.color, err = readColor(colorFlag, os.Stderr); err != nil {
		return nil, err
	}
	color.NoColor = !s.color

	// флаги подкоманд, если они у неё есть
	flags := cmd.Flags()
	if f := flags.Lookup("output-file"); f != nil && f.Changed {
		s.output = f.Value.String()
	}
	if f := flags.Lookup("comment"); f != nil && f.Changed {
		s.comment, _ = flags.GetBool("comment")
	}
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		s.jobs, _ = flags.GetInt("jobs")
	}
	if s.output == "" {
		s.output = project.DefaultOutput
	}
	return s, nil
}

func readColor(value string, f *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
