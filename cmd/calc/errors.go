package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// reportCommandError prints errors that were not rendered as diagnostics.
func reportCommandError(cmd *cobra.Command, err error) {
	if errors.Is(err, errFailed) {
		return
	}
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", prefix, err)
}
