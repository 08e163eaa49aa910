package ast

import (
	"calvin/internal/diag"
	"calvin/internal/source"
	"calvin/internal/types"
)

// NewExpr allocates an expression and normalizes it. The returned id is the
// root of the normalized tree; children may have been rotated or wrapped in
// casts, so callers must re-read them instead of holding on to left/right.
func (b *Builder) NewExpr(op Op, left, right NodeID, sp source.Span) (NodeID, error) {
	p := b.Exprs.Allocate(ExprData{Op: op, Left: left, Right: right})
	id := b.newNode(KindExpr, nil, sp, p)
	return b.Normalize(id)
}

// NewUnary keeps the operand on the right.
func (b *Builder) NewUnary(op Op, operand NodeID, sp source.Span) (NodeID, error) {
	return b.NewExpr(op, NoNodeID, operand, sp)
}

// NewCast converts e to the given type. No legality check is made.
func (b *Builder) NewCast(to *types.Meta, e NodeID, sp source.Span) (NodeID, error) {
	return b.NewExpr(OpCast, b.NewTypeRef(to, sp), e, sp)
}

// NewReturn builds a return statement; value may be NoNodeID.
func (b *Builder) NewReturn(value NodeID, sp source.Span) (NodeID, error) {
	return b.NewExpr(OpRet, NoNodeID, value, sp)
}

// NewCall builds a call of callee with an argument list. The callee is
// retyped by symbols.Function resolution once the target is known.
func (b *Builder) NewCall(callee, args NodeID, sp source.Span) (NodeID, error) {
	return b.NewExpr(OpCall, callee, args, sp)
}

func (b *Builder) SetLeft(id, left NodeID) error {
	ex := b.Expr(id)
	if ex == nil {
		return nil
	}
	ex.Left = left
	_, err := b.Normalize(id)
	return err
}

func (b *Builder) SetRight(id, right NodeID) error {
	ex := b.Expr(id)
	if ex == nil {
		return nil
	}
	ex.Right = right
	_, err := b.Normalize(id)
	return err
}

// SetOp changes the operator only; the node keeps its current type.
func (b *Builder) SetOp(id NodeID, op Op) {
	if ex := b.Expr(id); ex != nil {
		ex.Op = op
	}
}

// Normalize recomputes the result type of an expression, rotating
// "a * (b + c)" into "(a * b) + c" and inserting implicit widening casts.
// The root slot is reused, so the returned id equals id. Non-expressions
// are returned unchanged.
func (b *Builder) Normalize(id NodeID) (NodeID, error) {
	ex := b.Expr(id)
	if ex == nil {
		return id, nil
	}
	var (
		res *types.Meta
		err error
	)
	switch ex.Op.Class() {
	case ClassArith:
		res, err = b.typeArith(id)
	case ClassBits:
		res, err = b.typeBits(id)
	case ClassAssign:
		res, err = b.typeAssign(id)
	case ClassCompare:
		res = b.Types.Builtins().Bool
	default:
		res = b.typeProc(id)
	}
	if err != nil {
		return id, err
	}
	b.Retype(id, res)
	return id, nil
}

func (b *Builder) typeArith(id NodeID) (*types.Meta, error) {
	ex := b.Expr(id)
	if !ex.Left.IsValid() || !ex.Right.IsValid() {
		return nil, b.arityErr(id, ex.Op)
	}
	if r := b.Expr(ex.Right); r != nil && ex.Op.binds() == 2 && r.Op.binds() == 1 {
		if err := b.rotate(id); err != nil {
			return nil, err
		}
	}

	ex = b.Expr(id)
	lt, rt := b.TypeOf(ex.Left), b.TypeOf(ex.Right)
	if !lt.Equal(rt) {
		switch {
		case types.CanCast(lt, rt):
			cast := b.wrapCast(lt, ex.Right)
			b.Expr(id).Right = cast
		case types.CanCast(rt, lt):
			cast := b.wrapCast(rt, ex.Left)
			b.Expr(id).Left = cast
		default:
			return nil, diag.Errorf(diag.SemaTypeMismatch,
				"impossible to cast between %s and %s", lt, rt).
				With(lt.String(), rt.String()).At(b.SpanOf(id))
		}
	}
	return b.TypeOf(b.Expr(id).Left), nil
}

// rotate rewrites id = a OP1 (x OP2 c) into (a OP1 x) OP2 c. The right
// child's slot is reused for the new left subtree.
func (b *Builder) rotate(id NodeID) error {
	ex := b.Expr(id)
	inner := ex.Right
	r := b.Expr(inner)
	op1, a := ex.Op, ex.Left
	op2, x, c := r.Op, r.Left, r.Right

	*r = ExprData{Op: op1, Left: a, Right: x}
	if n := b.Node(inner); n != nil {
		n.Span = b.SpanOf(a).Cover(b.SpanOf(x))
	}
	if _, err := b.Normalize(inner); err != nil {
		return err
	}
	*b.Expr(id) = ExprData{Op: op2, Left: inner, Right: c}
	b.emit(RewriteRotate, id, op1.String()+" over "+op2.String())
	return nil
}

func (b *Builder) wrapCast(to *types.Meta, operand NodeID) NodeID {
	sp := b.SpanOf(operand)
	tr := b.NewTypeRef(to, sp)
	p := b.Exprs.Allocate(ExprData{Op: OpCast, Left: tr, Right: operand})
	id := b.newNode(KindExpr, to, sp, p)
	b.emit(RewriteCast, id, b.TypeOf(operand).String()+" -> "+to.String())
	return id
}

func (b *Builder) typeBits(id NodeID) (*types.Meta, error) {
	ex := b.Expr(id)
	if !ex.Right.IsValid() && !ex.Left.IsValid() {
		return nil, b.arityErr(id, ex.Op)
	}
	for _, operand := range [...]NodeID{ex.Left, ex.Right} {
		if !operand.IsValid() {
			continue
		}
		if t := b.TypeOf(operand); t == nil || t.Class() != types.ClassIntegral {
			return nil, diag.Errorf(diag.SemaInvalidOperandClass,
				"bitwise %s is only valid for integral types, got %s", ex.Op, t).
				With(t.String()).At(b.SpanOf(operand))
		}
	}
	if ex.Left.IsValid() {
		return b.TypeOf(ex.Left), nil
	}
	return b.TypeOf(ex.Right), nil
}

func (b *Builder) typeAssign(id NodeID) (*types.Meta, error) {
	ex := b.Expr(id)
	if !ex.Left.IsValid() {
		return nil, b.arityErr(id, ex.Op)
	}
	lt := b.TypeOf(ex.Left)
	if !ex.Right.IsValid() {
		return lt, nil
	}
	rt := b.TypeOf(ex.Right)
	if lt.Equal(rt) {
		return lt, nil
	}
	if !types.CanCast(lt, rt) {
		return nil, diag.Errorf(diag.SemaTypeMismatch,
			"impossible to cast %s to %s", rt, lt).
			With(rt.String(), lt.String()).At(b.SpanOf(id))
	}
	cast := b.wrapCast(lt, ex.Right)
	b.Expr(id).Right = cast
	return lt, nil
}

func (b *Builder) typeProc(id NodeID) *types.Meta {
	ex := b.Expr(id)
	switch {
	case ex.Left.IsValid():
		return b.TypeOf(ex.Left)
	case ex.Right.IsValid():
		return b.TypeOf(ex.Right)
	}
	return b.Types.Builtins().Void
}

func (b *Builder) arityErr(id NodeID, op Op) error {
	return diag.Errorf(diag.SynUnexpectedForm, "operator %s is missing an operand", op).At(b.SpanOf(id))
}
