package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calvin/internal/dump"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.cal>",
	Short: "Print the laid-out symbol table and data list",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "text", "output format (text|json|yaml)")
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := dump.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	s.jobs = 1
	c, err := compileInputs(cmd, s, args, false)
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

	out := cmd.OutOrStdout()
	r := c.results[0]
	if format == dump.FormatText && !s.quiet {
		styled := s.color && isTerminal(os.Stdout)
		fmt.Fprintln(out, dump.Header(fmt.Sprintf("%s (%s)", r.Path, s.target.Triple), styled))
	}
	return dump.Write(out, unitOf(r, s), format)
}
