// Package dump renders a finished compilation unit for the backend and
// for humans: the ";" listing, JSON and YAML.
package dump

import (
	"calvin/internal/ast"
	"calvin/internal/symbols"
)

// Unit is the finalized state a backend consumes.
type Unit struct {
	Builder *ast.Builder
	Table   *symbols.Table
	Root    symbols.ScopeID
	Data    ast.NodeID
	Target  string
}
