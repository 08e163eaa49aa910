package main

import (
	"errors"
	"fmt"
	"os"

	"calvin/internal/driver"
)

const noInputsMessage = "no input files: pass .cal files or directories, or list [build] sources in calvin.toml"

// resolveInputs expands directories to their scripts. Without arguments
// the manifest sources are used.
func resolveInputs(args []string, s *settings) ([]string, error) {
	if len(args) == 0 {
		args = s.manifest.Build.Sources
	}
	if len(args) == 0 {
		return nil, errors.New(noInputsMessage)
	}
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// missing files surface as IO diagnostics of their own unit
			paths = append(paths, arg)
			continue
		}
		scripts, err := driver.ListScripts(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		if len(scripts) == 0 {
			return nil, fmt.Errorf("%s: no %s files", arg, driver.ScriptExt)
		}
		paths = append(paths, scripts...)
	}
	return paths, nil
}
