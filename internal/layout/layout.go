package layout

import (
	"fortio.org/safecast"

	"calvin/internal/symbols"
	"calvin/internal/types"
)

// Engine assigns sizes and frame offsets to the symbols of a table tree.
type Engine struct {
	Target Target
	Table  *symbols.Table

	cache *cache
}

// New creates an Engine for the given target.
func New(target Target, table *symbols.Table) *Engine {
	return &Engine{
		Target: target,
		Table:  table,
		cache:  newCache(),
	}
}

// SizeOf is the storage size of a value of type m: the tag width for
// scalars, element size times count for lists.
func (e *Engine) SizeOf(m *types.Meta) (int, error) {
	if m == nil {
		return 0, nil
	}
	if e.cache == nil {
		e.cache = newCache()
	}
	if n, ok := e.cache.get(m); ok {
		return n, nil
	}
	size := m.ByteSize()
	if m.IsList() {
		elem, err := e.SizeOf(m.Child())
		if err != nil {
			return 0, err
		}
		n, err := safecast.Conv[int32](int64(elem) * int64(m.Count()))
		if err != nil {
			return 0, &LayoutError{Kind: LayoutErrLengthConversion, Type: m.String(), Err: err}
		}
		size = int(n)
	}
	e.cache.put(m, size)
	return size, nil
}

// Assign lays out scope once. Symbols are placed in declaration order; a
// function's nested table is laid out before the function itself is
// sized. The first symbol sits at Target.Base plus its own size, every
// later one at the previous location plus its own size. Calling Assign
// again on a laid-out table does nothing. A failed layout leaves the table
// unplaced and not laid out.
func (e *Engine) Assign(scope symbols.ScopeID) error {
	s := e.Table.Scope(scope)
	if s == nil {
		return &LayoutError{Kind: LayoutErrNoTable}
	}
	if s.LaidOut {
		return nil
	}
	s.LaidOut = true
	ids := append([]symbols.SymbolID(nil), s.Symbols...)
	if err := e.place(ids); err != nil {
		s.LaidOut = false
		for _, id := range ids {
			sym := e.Table.Symbol(id)
			sym.Location, sym.Size = symbols.NoLocation, 0
		}
		return err
	}
	return nil
}

func (e *Engine) place(ids []symbols.SymbolID) error {
	loc := int64(e.Target.Base)
	for _, id := range ids {
		if fn := e.Table.Function(id); fn != nil {
			if err := e.Assign(fn.Scope); err != nil {
				return err
			}
		}
		sym := e.Table.Symbol(id)
		size, err := e.SizeOf(sym.Meta)
		if err != nil {
			if le, ok := err.(*LayoutError); ok {
				le.Symbol = sym.Name
			}
			return err
		}
		loc += int64(size)
		placed, err := safecast.Conv[int32](loc)
		if err != nil {
			return &LayoutError{Kind: LayoutErrOverflow, Symbol: sym.Name, Type: sym.Meta.String(), Err: err}
		}
		sym.Size = size
		sym.Location = int(placed)
	}
	return nil
}
