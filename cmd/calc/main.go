// Package main implements the calc CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calvin/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "calc",
	Short:         "Calvin compiler semantic core",
	Long:          `calc checks reduction scripts, lays out their symbol tables and writes the default listing`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags, then runs the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-errors", 1, "diagnostics kept per file before the compilation stops")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	pf.BoolP("debug", "d", false, "write the debug trace to stderr (same as --trace-level=debug)")
	pf.String("trace-level", "", "trace level (off|error|phase|detail|debug); default from calvin.toml")
	pf.String("trace", "", "trace output file (- or empty for stderr)")
	pf.StringP("target", "t", "", "target triple; default from calvin.toml or x86_64-linux-gnu")

	if err := rootCmd.Execute(); err != nil {
		reportCommandError(rootCmd, err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
