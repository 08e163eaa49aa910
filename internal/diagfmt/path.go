package diagfmt

import (
	"path/filepath"

	"calvin/internal/source"
)

func formatPath(f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}

// located reports whether sp can be shown as a file position. Load
// failures carry no file.
func located(fs *source.FileSet, sp source.Span) (*source.File, bool) {
	if fs == nil {
		return nil, false
	}
	f := fs.Get(sp.File)
	return f, f != nil
}
