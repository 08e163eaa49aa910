package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"calvin/internal/driver"
	"calvin/internal/dump"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.cal|directory]...",
	Short: "Check scripts and write the default listing",
	Long: `Build replays every script, lays out its tables and writes the default
generator listing into the output file. Without arguments the sources
listed in calvin.toml are built.`,
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().StringP("output-file", "o", "", "listing file (default cal.out.s)")
	buildCmd.Flags().BoolP("comment", "c", false, "annotate each unit in the listing with its source and target")
	buildCmd.Flags().BoolP("no-gen", "n", false, "stop after checking; write nothing")
	buildCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	noGen, err := cmd.Flags().GetBool("no-gen")
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	paths, err := resolveInputs(args, s)
	if err != nil {
		return err
	}
	c, err := compileInputs(cmd, s, paths, false)
	if err != nil {
		return err
	}
	defer c.printTimings(cmd, s)
	if err := c.printDiagnostics(s); err != nil {
		return err
	}
	if !c.ok() {
		return errFailed
	}
	if noGen {
		return nil
	}

	if err := writeListing(s.output, c.results, s); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", s.output)
	}
	return nil
}

// writeListing writes every unit through the default generator.
func writeListing(path string, results []*driver.Result, s *settings) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if s.comment {
			writeUnitComment(w, r, s)
		}
		if err := dump.Generate(w, unitOf(r, s)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return w.Flush()
}

func writeUnitComment(w io.Writer, r *driver.Result, s *settings) {
	fmt.Fprintf(w, ";Source: %s\n", r.Path)
	fmt.Fprintf(w, ";Target: %s\n", s.target.Triple)
	fmt.Fprintf(w, ";Frame: %d bytes\n\n", r.Table.Space(r.Root))
}

func unitOf(r *driver.Result, s *settings) dump.Unit {
	return dump.Unit{
		Builder: r.Builder,
		Table:   r.Table,
		Root:    r.Root,
		Data:    r.Data,
		Target:  s.target.Triple,
	}
}
