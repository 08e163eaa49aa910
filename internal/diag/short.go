package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"calvin/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line, sorted by position:
// "path:line:col: SEVERITY CODE: message". Used by golden tests and by the
// CLI short format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, toShort(fs, d.Severity, d.Code, d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, toShort(fs, SevInfo, d.Code, n.Span, "note: "+n.Msg))
		}
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var sb strings.Builder
	for i, r := range rendered {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return sb.String()
}

func toShort(fs *source.FileSet, sev Severity, code Code, sp source.Span, msg string) shortDiagnostic {
	out := shortDiagnostic{
		Severity: sev.String(),
		Code:     code.ID(),
		Message:  msg,
		Path:     "<unknown>",
	}
	if fs == nil {
		return out
	}
	if f := fs.Get(sp.File); f != nil {
		out.Path = filepath.Base(f.Path)
		start, _ := fs.Resolve(sp)
		out.Line, out.Column = start.Line, start.Col
	}
	return out
}
