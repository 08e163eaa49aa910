package symbols_test

import (
	"errors"
	"testing"

	"calvin/internal/ast"
	"calvin/internal/diag"
	"calvin/internal/layout"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/types"
)

func TestAddSymbolsSwapsNestedTable(t *testing.T) {
	in := types.NewInterner()
	table := symbols.NewTable(symbols.Hints{}, in)
	b := ast.NewBuilder(ast.Hints{}, in)
	root := table.Program("main")

	id, err := table.NewFunction(b, root, "f", in.Intern("void"), ast.NoNodeID, false, source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	old := table.Function(id).Scope
	if _, err := table.Create(old, "p", "i8"); err != nil {
		t.Fatal(err)
	}
	fresh := table.NewScope(symbols.ScopeFunction, symbols.AccessPrivate, symbols.NoScopeID, "f.v")
	g, _ := table.Create(root, "g", "i32")
	x, _ := table.Create(fresh, "x", "i64")
	y, _ := table.Create(fresh, "y", "i16")

	if err := table.AddSymbols(id, fresh); err != nil {
		t.Fatalf("add symbols: %v", err)
	}
	if table.Function(id).Scope != fresh {
		t.Fatal("expected the new table to be attached")
	}
	if table.Scope(fresh).Parent != root {
		t.Fatalf("expected the new table to inherit parent %d, got %d", root, table.Scope(fresh).Parent)
	}

	if err := layout.New(layout.DefaultTarget(), table).Assign(root); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got := table.Symbol(x).Location; got != 8 {
		t.Fatalf("expected x at 8, got %d", got)
	}
	if got := table.Symbol(y).Location; got != 10 {
		t.Fatalf("expected y at 10, got %d", got)
	}
	if table.Scope(old).LaidOut {
		t.Fatal("the replaced table must not be laid out")
	}

	again := table.NewScope(symbols.ScopeFunction, symbols.AccessPrivate, root, "f.v")
	if err := table.AddSymbols(id, again); !errors.Is(err, diag.ErrTableLaidOut) {
		t.Fatalf("expected a laid out refusal, got %v", err)
	}
	if err := table.AddSymbols(g, again); !errors.Is(err, diag.ErrNotCallable) {
		t.Fatalf("expected not callable, got %v", err)
	}
}
