package layout_test

import (
	"errors"
	"testing"

	"calvin/internal/ast"
	"calvin/internal/layout"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/types"
)

func TestAssignCumulativeLocations(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.Program("main")
	a, _ := table.Create(root, "a", "i32")
	b, _ := table.Create(root, "b", "i32")

	engine := layout.New(layout.DefaultTarget(), table)
	if err := engine.Assign(root); err != nil {
		t.Fatalf("assign: %v", err)
	}
	sa, sb := table.Symbol(a), table.Symbol(b)
	if sa.Size != 4 || sa.Location != 4 {
		t.Fatalf("expected a size 4 at 4, got %d at %d", sa.Size, sa.Location)
	}
	if sb.Size != 4 || sb.Location != 8 {
		t.Fatalf("expected b size 4 at 8, got %d at %d", sb.Size, sb.Location)
	}
	if table.Space(root) != 8 {
		t.Fatalf("expected 8 bytes of space, got %d", table.Space(root))
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.Program("main")
	x, _ := table.Create(root, "x", "r64")
	engine := layout.New(layout.DefaultTarget(), table)
	if err := engine.Assign(root); err != nil {
		t.Fatal(err)
	}
	before := table.Symbol(x).Location

	// a late symbol is not placed by a second pass
	late, _ := table.Create(root, "late", "i8")
	if err := engine.Assign(root); err != nil {
		t.Fatal(err)
	}
	if table.Symbol(x).Location != before {
		t.Fatal("second pass must not move symbols")
	}
	if table.Symbol(late).Location != symbols.NoLocation {
		t.Fatal("second pass must be a no-op")
	}
	if !table.Scope(root).LaidOut {
		t.Fatal("laid out flag must stay set")
	}
}

func TestFunctionTablesLaidOutFirst(t *testing.T) {
	in := types.NewInterner()
	table := symbols.NewTable(symbols.Hints{}, in)
	b := ast.NewBuilder(ast.Hints{}, in)
	root := table.Program("main")

	params := b.NewList(source.Span{})
	b.Append(params, b.NewDecl(in.Intern("i64"), "n", source.Span{}))
	b.Append(params, b.NewDecl(in.Intern("char[3]"), "tag", source.Span{}))
	fn, err := table.NewFunction(b, root, "f", in.Intern("i16"), params, false, source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	g, _ := table.Create(root, "g", "bool")

	engine := layout.New(layout.DefaultTarget(), table)
	if err := engine.Assign(root); err != nil {
		t.Fatal(err)
	}
	inner := table.Function(fn).Scope
	if !table.Scope(inner).LaidOut {
		t.Fatal("nested table must be laid out")
	}
	n := table.Symbol(table.At(inner, 0))
	tag := table.Symbol(table.At(inner, 1))
	if n.Location != 8 || tag.Size != 3 || tag.Location != 11 {
		t.Fatalf("unexpected nested layout n@%d tag %d@%d", n.Location, tag.Size, tag.Location)
	}
	if s := table.Symbol(fn); s.Size != 2 || s.Location != 2 {
		t.Fatalf("function symbol takes its return size, got %d@%d", s.Size, s.Location)
	}
	if s := table.Symbol(g); s.Location != 3 {
		t.Fatalf("expected g at 3, got %d", s.Location)
	}
}

func TestSizeOfLists(t *testing.T) {
	engine := layout.New(layout.DefaultTarget(), symbols.NewTable(symbols.Hints{}, nil))
	cases := map[string]int{
		"i32":       4,
		"x64":       16,
		"void":      0,
		"r64[8]":    64,
		"i16[2][3]": 12,
		"char[]":    0,
	}
	for spelling, want := range cases {
		got, err := engine.SizeOf(types.Parse(spelling))
		if err != nil || got != want {
			t.Fatalf("%s: expected %d, got %d (%v)", spelling, want, got, err)
		}
	}
}

func TestSizeOverflow(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.Program("main")
	_, _ = table.Create(root, "huge", "x64[999999999]")
	err := layout.New(layout.DefaultTarget(), table).Assign(root)
	var le *layout.LayoutError
	if !errors.As(err, &le) || le.Kind != layout.LayoutErrLengthConversion || le.Symbol != "huge" {
		t.Fatalf("expected length conversion error for huge, got %v", err)
	}
}

func TestFailedAssignIsNotTerminal(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.Program("main")
	small, _ := table.Create(root, "small", "i32")
	_, _ = table.Create(root, "big", "i64[1000000000]")
	engine := layout.New(layout.DefaultTarget(), table)

	if err := engine.Assign(root); err == nil {
		t.Fatal("expected the oversized table to fail")
	}
	if table.Scope(root).LaidOut {
		t.Fatal("a failed layout must not mark the table laid out")
	}
	if s := table.Symbol(small); s.Location != symbols.NoLocation || s.Size != 0 {
		t.Fatalf("partial placement kept: small at %d size %d", s.Location, s.Size)
	}
	// retrying still reports the error instead of silently succeeding
	if err := engine.Assign(root); err == nil {
		t.Fatal("expected the second attempt to fail too")
	}

	if !table.Remove(root, "big") {
		t.Fatal("remove big")
	}
	if err := engine.Assign(root); err != nil {
		t.Fatalf("assign after fixing the table: %v", err)
	}
	if s := table.Symbol(small); s.Location != 4 || !table.Scope(root).LaidOut {
		t.Fatalf("expected small at 4, got %d", s.Location)
	}
}

func TestTargetsShareScalarLayout(t *testing.T) {
	for _, triple := range layout.Targets() {
		target, ok := layout.LookupTarget(triple)
		if !ok || target.Triple != triple {
			t.Fatalf("lookup %s: %+v %v", triple, target, ok)
		}
		table := symbols.NewTable(symbols.Hints{}, nil)
		root := table.Program("main")
		id, _ := table.Create(root, "w", "i64")
		if err := layout.New(target, table).Assign(root); err != nil {
			t.Fatal(err)
		}
		if got := table.Symbol(id).Location; got != target.Base+8 {
			t.Fatalf("%s: expected %d, got %d", triple, target.Base+8, got)
		}
	}
	if _, ok := layout.LookupTarget("pdp11-unknown"); ok {
		t.Fatal("unknown triples must not resolve")
	}
}
