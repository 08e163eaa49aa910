package main

import (
	"os"

	"github.com/spf13/cobra"

	"calvin/internal/dump"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the builtin types with their widths and classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		styled, err := readColor(colorFlag, os.Stdout)
		if err != nil {
			return err
		}
		return dump.WriteTypes(cmd.OutOrStdout(), styled)
	},
}
