package ast

import (
	"errors"
	"strings"
	"testing"

	"calvin/internal/diag"
	"calvin/internal/source"
	"calvin/internal/types"
)

func newTestBuilder() *Builder {
	return NewBuilder(Hints{}, types.NewInterner())
}

func i32(b *Builder, v int32) NodeID {
	return NewLiteral(b, b.Types.Intern("i32"), v, source.Span{})
}

func r64(b *Builder, v float64) NodeID {
	return NewLiteral(b, b.Types.Intern("r64"), v, source.Span{})
}

func mustExpr(t *testing.T, b *Builder, op Op, l, r NodeID) NodeID {
	t.Helper()
	id, err := b.NewExpr(op, l, r, source.Span{})
	if err != nil {
		t.Fatalf("unexpected error building %s: %v", op, err)
	}
	return id
}

func TestRotationCorrectsPrecedence(t *testing.T) {
	b := newTestBuilder()
	var events []RewriteEvent
	b.OnRewrite = func(ev RewriteEvent) { events = append(events, ev) }

	sum := mustExpr(t, b, OpAdd, i32(b, 3), i32(b, 4))
	root := mustExpr(t, b, OpMul, i32(b, 2), sum)

	ex := b.Expr(root)
	if ex.Op != OpAdd {
		t.Fatalf("expected root to become +, got %s", ex.Op)
	}
	left := b.Expr(ex.Left)
	if left == nil || left.Op != OpMul {
		t.Fatalf("expected left child to be *, got %+v", left)
	}
	if v, _ := LiteralAs[int32](b, left.Left); v != 2 {
		t.Fatalf("expected 2 on the far left, got %d", v)
	}
	if v, _ := LiteralAs[int32](b, left.Right); v != 3 {
		t.Fatalf("expected 3 in the product, got %d", v)
	}
	if v, _ := LiteralAs[int32](b, ex.Right); v != 4 {
		t.Fatalf("expected 4 on the right, got %d", v)
	}
	if len(events) != 1 || events[0].Kind != RewriteRotate {
		t.Fatalf("expected one rotate event, got %+v", events)
	}
}

func TestNoRotationForSamePrecedence(t *testing.T) {
	b := newTestBuilder()
	prod := mustExpr(t, b, OpMul, i32(b, 3), i32(b, 4))
	root := mustExpr(t, b, OpAdd, i32(b, 2), prod)
	if b.Expr(root).Op != OpAdd || b.Expr(b.Expr(root).Right).Op != OpMul {
		t.Fatal("2 + 3 * 4 must keep its shape")
	}
}

func TestImplicitCastWidensEitherSide(t *testing.T) {
	b := newTestBuilder()

	root := mustExpr(t, b, OpAdd, i32(b, 1), r64(b, 2.5))
	ex := b.Expr(root)
	cast := b.Expr(ex.Left)
	if cast == nil || cast.Op != OpCast {
		t.Fatalf("expected the i32 side to be cast, got %+v", cast)
	}
	if got := b.TypeOf(root).String(); got != "r64" {
		t.Fatalf("expected r64 result, got %s", got)
	}

	root = mustExpr(t, b, OpSub, r64(b, 2.5), i32(b, 1))
	ex = b.Expr(root)
	if b.Expr(ex.Right) == nil || b.Expr(ex.Right).Op != OpCast {
		t.Fatal("expected the right operand to be cast")
	}
	if b.Expr(ex.Left) != nil {
		t.Fatal("left operand must stay untouched")
	}
}

func TestTypeMismatchNamesBothTypes(t *testing.T) {
	b := newTestBuilder()
	l := NewLiteral(b, b.Types.Intern("i64"), int64(1), source.Span{})
	r := NewLiteral(b, b.Types.Intern("r32"), float32(1), source.Span{})
	_, err := b.NewExpr(OpAdd, l, r, source.Span{})
	if !errors.Is(err, diag.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	var de *diag.Error
	if !errors.As(err, &de) || len(de.Names) != 2 || de.Names[0] != "i64" || de.Names[1] != "r32" {
		t.Fatalf("expected both type names, got %+v", de)
	}
}

func TestBitwiseRequiresIntegral(t *testing.T) {
	b := newTestBuilder()
	_, err := b.NewExpr(OpBAnd, r64(b, 1), i32(b, 1), source.Span{})
	if !errors.Is(err, diag.ErrInvalidOperandClass) {
		t.Fatalf("expected invalid operand class, got %v", err)
	}
	not, err := b.NewUnary(OpBNot, i32(b, 7), source.Span{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.TypeOf(not).String(); got != "i32" {
		t.Fatalf("expected i32, got %s", got)
	}
}

func TestAssignmentCastsRightHandSide(t *testing.T) {
	b := newTestBuilder()
	target := b.NewIdent("x", b.Types.Intern("i64"), source.Span{})
	assign := mustExpr(t, b, OpEqu, target, i32(b, 5))
	if got := b.TypeOf(assign).String(); got != "i64" {
		t.Fatalf("expected i64, got %s", got)
	}
	if b.Expr(b.Expr(assign).Right).Op != OpCast {
		t.Fatal("expected cast on the right-hand side")
	}

	narrow := b.NewIdent("y", b.Types.Intern("i32"), source.Span{})
	if _, err := b.NewExpr(OpEqu, narrow, r64(b, 1), source.Span{}); !errors.Is(err, diag.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch for narrowing assignment, got %v", err)
	}
}

func TestComparisonIsBool(t *testing.T) {
	b := newTestBuilder()
	cmp := mustExpr(t, b, OpLT, r64(b, 1), i32(b, 2))
	if b.TypeOf(cmp).Type() != types.Bool {
		t.Fatalf("expected bool, got %s", b.TypeOf(cmp))
	}
}

func TestSetRightRenormalizes(t *testing.T) {
	b := newTestBuilder()
	target := b.NewIdent("x", b.Types.Intern("r64"), source.Span{})
	assign := mustExpr(t, b, OpEqu, target, r64(b, 1))
	if err := b.SetRight(assign, i32(b, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Expr(b.Expr(assign).Right).Op != OpCast {
		t.Fatal("expected cast after SetRight")
	}
	b.SetOp(assign, OpAdd)
	if b.Expr(assign).Op != OpAdd || b.TypeOf(assign).String() != "r64" {
		t.Fatal("SetOp must only change the operator")
	}
}

func TestStringEscaping(t *testing.T) {
	b := newTestBuilder()
	id := b.NewString(`a\b`, source.Span{})
	if got := b.StringLit(id).Value; got != `a\\b` {
		t.Fatalf("expected lone backslash doubled, got %q", got)
	}
	b.SetString(id, `a\\b`)
	if got := b.StringLit(id).Value; got != `a\\b` {
		t.Fatalf("expected existing pair kept, got %q", got)
	}
	if got := b.TypeOf(id).String(); got != "char[4]" {
		t.Fatalf("expected char[4], got %s", got)
	}
}

func TestListTyping(t *testing.T) {
	b := newTestBuilder()
	empty := b.NewList(source.Span{})
	if got := b.TypeOf(empty).String(); got != "list[0]" {
		t.Fatalf("expected list[0], got %s", got)
	}
	l := b.NewListOf(i32(b, 1), source.Span{})
	if got := b.TypeOf(l).Child(); got == nil || got.Type() != types.I32 {
		t.Fatalf("expected i32 elements, got %v", got)
	}
	if idx := b.Append(l, i32(b, 2)); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	other := b.NewListOf(i32(b, 3), source.Span{})
	b.Extend(l, other)
	if b.Len(l) != 3 || b.Len(other) != 0 {
		t.Fatalf("expected 3/0 members, got %d/%d", b.Len(l), b.Len(other))
	}
	if v, _ := LiteralAs[int32](b, b.At(l, 2)); v != 3 {
		t.Fatalf("expected moved member last, got %d", v)
	}
}

func TestFormatExpression(t *testing.T) {
	b := newTestBuilder()
	root := mustExpr(t, b, OpAdd, i32(b, 1), i32(b, 2))
	got := b.Format(root, 0, ";")
	want := strings.Join([]string{
		";(i32 +",
		"\t;i32 1",
		"\t;i32 2",
		";)",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected format:\n%s\nwant:\n%s", got, want)
	}
	empty := b.Format(b.NewList(source.Span{}), 0, "")
	if empty != "list[0] : 0[\n\tno members\n]" {
		t.Fatalf("unexpected empty list format %q", empty)
	}
}
