package version

import "github.com/fatih/color"

// Version information for the calc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Name is the product name printed by "calc version".
	Name = "Calvin Compiler"

	// Version is the semantic version of the CLI.
	Version = "0.0.1"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

// String renders "Calvin Compiler v0.0.1" without color.
func String() string {
	return Name + " v" + Version
}

// Colored renders the same text with terminal colors; fatih/color drops
// them when output is not a terminal or color.NoColor is set.
func Colored() string {
	return nameColor.Sprint(Name) + " " + versionColor.Sprint("v"+Version)
}
