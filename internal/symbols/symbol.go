package symbols

import (
	"calvin/internal/source"
	"calvin/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolParam
	SymbolFunction
	SymbolString
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolFunction:
		return "function"
	case SymbolString:
		return "string"
	default:
		return "invalid"
	}
}

// NoLocation marks a symbol that has not been laid out.
const NoLocation = -1

// Symbol is a named, typed entry. Location and Size are written by the
// layout pass only.
type Symbol struct {
	Name     string
	TypeName string
	Meta     *types.Meta
	Kind     SymbolKind
	Scope    ScopeID
	Span     source.Span
	Location int
	Size     int
	Lookups  int
	Func     *Function // set for SymbolFunction
}

// NewSymbol builds an unplaced symbol of the given type.
func NewSymbol(name string, meta *types.Meta, kind SymbolKind) Symbol {
	return Symbol{
		Name:     name,
		TypeName: meta.Name(),
		Meta:     meta,
		Kind:     kind,
		Location: NoLocation,
	}
}

// IsFunction reports whether the symbol owns a nested table.
func (s *Symbol) IsFunction() bool {
	return s != nil && s.Func != nil
}
