package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.cal|directory]...",
	Short: "Check scripts without writing a listing",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-layout", false, "skip the layout pass")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	noLayout, err := cmd.Flags().GetBool("no-layout")
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
	c, err := compileInputs(cmd, s, paths, noLayout)
	if err != nil {
		return err
	}
	defer c.printTimings(cmd, s)
	if err := c.printDiagnostics(s); err != nil {
		return err
	}
	if !s.quiet {
		for _, r := range c.results {
			status := "ok"
			if !r.OK() {
				status = "failed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", status, r.Path)
		}
	}
	if !c.ok() {
		return errFailed
	}
	return nil
}
