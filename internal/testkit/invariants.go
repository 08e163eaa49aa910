package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"calvin/internal/ast"
	"calvin/internal/layout"
	"calvin/internal/source"
	"calvin/internal/symbols"
)

// CheckLayoutInvariants verifies what a backend relies on after layout:
//  1. every reachable table is laid out
//  2. every symbol has a non-negative location and the size of its type
//  3. locations never decrease in declaration order
//  4. a function's nested table is laid out too
func CheckLayoutInvariants(table *symbols.Table, root symbols.ScopeID, engine *layout.Engine) error {
	if table == nil || engine == nil {
		return fmt.Errorf("nil table or engine")
	}
	return checkScope(table, root, engine)
}

func checkScope(table *symbols.Table, id symbols.ScopeID, engine *layout.Engine) error {
	s := table.Scope(id)
	if s == nil {
		return fmt.Errorf("scope %d not found", id)
	}
	if !s.LaidOut {
		return fmt.Errorf("table %s is not laid out", s.Owner)
	}
	prev := -1
	for _, symID := range s.Symbols {
		sym := table.Symbol(symID)
		if sym.Location < 0 {
			return fmt.Errorf("%s.%s has no location", s.Owner, sym.Name)
		}
		want, err := engine.SizeOf(sym.Meta)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", s.Owner, sym.Name, err)
		}
		if sym.Size != want {
			return fmt.Errorf("%s.%s: size %d, type %s needs %d", s.Owner, sym.Name, sym.Size, sym.Meta, want)
		}
		if sym.Location < prev {
			return fmt.Errorf("%s.%s: location %d below previous %d", s.Owner, sym.Name, sym.Location, prev)
		}
		prev = sym.Location
		if sym.IsFunction() {
			if err := checkScope(table, sym.Func.Scope, engine); err != nil {
				return fmt.Errorf("in %s: %w", sym.Name, err)
			}
		}
	}
	return nil
}

// CheckSpanInvariants verifies that every node under root has a
// well-formed span inside sf.
func CheckSpanInvariants(b *ast.Builder, root ast.NodeID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var bad error
	b.Walk(root, func(id ast.NodeID) bool {
		if bad != nil {
			return false
		}
		sp := b.SpanOf(id)
		switch {
		case sp.File != sf.ID:
			bad = fmt.Errorf("node %d span points to file %d, want %d", id, sp.File, sf.ID)
		case sp.End < sp.Start:
			bad = fmt.Errorf("node %d has inverted span %v", id, sp)
		case sp.End > lenContent:
			bad = fmt.Errorf("node %d span end beyond content: %d > %d", id, sp.End, lenContent)
		}
		return bad == nil
	})
	return bad
}
