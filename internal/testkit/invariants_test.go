package testkit

import (
	"testing"

	"calvin/internal/ast"
	"calvin/internal/layout"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/types"
)

func TestLayoutInvariantsHoldAfterAssign(t *testing.T) {
	in := types.NewInterner()
	table := symbols.NewTable(symbols.Hints{}, in)
	b := ast.NewBuilder(ast.Hints{}, in)
	root := table.Program("main")
	params := b.NewList(source.Span{})
	b.Append(params, b.NewDecl(in.Intern("i32"), "x", source.Span{}))
	if _, err := table.NewFunction(b, root, "f", in.Intern("i32"), params, false, source.Span{}); err != nil {
		t.Fatal(err)
	}
	_, _ = table.Create(root, "g", "r64[2]")

	engine := layout.New(layout.DefaultTarget(), table)
	if err := CheckLayoutInvariants(table, root, engine); err == nil {
		t.Fatal("expected failure before layout")
	}
	if err := engine.Assign(root); err != nil {
		t.Fatal(err)
	}
	if err := CheckLayoutInvariants(table, root, engine); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}

	table.Symbol(table.Last(root)).Size = 1
	if err := CheckLayoutInvariants(table, root, engine); err == nil {
		t.Fatal("expected size mismatch to be reported")
	}
}

func TestSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cal", []byte("(+ 1 2)"))
	b := ast.NewBuilder(ast.Hints{}, nil)
	one := ast.NewLiteral(b, b.Types.Intern("i32"), int32(1), source.Span{File: id, Start: 3, End: 4})
	two := ast.NewLiteral(b, b.Types.Intern("i32"), int32(2), source.Span{File: id, Start: 5, End: 6})
	sum, err := b.NewExpr(ast.OpAdd, one, two, source.Span{File: id, Start: 0, End: 7})
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckSpanInvariants(b, sum, fs.Get(id)); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
	b.Node(two).Span.End = 99
	if err := CheckSpanInvariants(b, sum, fs.Get(id)); err == nil {
		t.Fatal("expected out-of-bounds span to be reported")
	}
}
