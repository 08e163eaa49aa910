package diagfmt

import (
	"fmt"
	"io"

	"calvin/internal/diag"
	"calvin/internal/source"
)

// Short writes one line per diagnostic. Diagnostics without a file
// position are written without one.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, notes bool) {
	var positioned, floating []diag.Diagnostic
	for _, d := range bag.Items() {
		if _, ok := located(fs, d.Primary); ok {
			positioned = append(positioned, d)
		} else {
			floating = append(floating, d)
		}
	}
	for _, d := range floating {
		fmt.Fprintf(w, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
	}
	if out := diag.FormatShort(positioned, fs, notes); out != "" {
		fmt.Fprintln(w, out)
	}
}
