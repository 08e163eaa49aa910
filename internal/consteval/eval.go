// Package consteval folds expression trees built only from literals.
package consteval

import (
	"errors"
	"fmt"

	"calvin/internal/ast"
	"calvin/internal/types"
)

// ErrNotConstant is returned for trees that reference identifiers, calls
// or strings.
var ErrNotConstant = errors.New("expression is not constant")

// Eval folds id. Arithmetic is done in the domain of the node's result
// type, so a real-typed sum of an int and a real is computed in floats.
func Eval(b *ast.Builder, id ast.NodeID) (Value, error) {
	n := b.Node(id)
	if n == nil {
		return Value{}, ErrNotConstant
	}
	switch n.Kind {
	case ast.KindLiteral:
		return fromLiteral(b.Literal(id).Value)
	case ast.KindExpr:
		return evalExpr(b, id)
	}
	return Value{}, fmt.Errorf("%w: %s", ErrNotConstant, n.Kind)
}

func evalExpr(b *ast.Builder, id ast.NodeID) (Value, error) {
	ex := *b.Expr(id)
	if ex.Op == ast.OpCast {
		v, err := Eval(b, ex.Right)
		if err != nil {
			return Value{}, err
		}
		return fit(convert(v, b.TypeOf(id)), b.TypeOf(id)), nil
	}
	if ex.Op == ast.OpCall || ex.Op == ast.OpEqu || ex.Op == ast.OpRet {
		return Value{}, fmt.Errorf("%w: %s", ErrNotConstant, ex.Op)
	}

	var (
		l, r Value
		err  error
	)
	if ex.Left.IsValid() {
		if l, err = Eval(b, ex.Left); err != nil {
			return Value{}, err
		}
	}
	if r, err = Eval(b, ex.Right); err != nil {
		return Value{}, err
	}

	switch ex.Op.Class() {
	case ast.ClassArith:
		v, err := arith(ex.Op, l, r)
		return fit(v, b.TypeOf(id)), err
	case ast.ClassBits:
		v, err := bits(ex.Op, ex.Left.IsValid(), l, r)
		return fit(v, b.TypeOf(id)), err
	case ast.ClassCompare:
		return compare(ex.Op, l, r), nil
	}
	switch ex.Op {
	case ast.OpLNot:
		return Boolean(!r.truthy()), nil
	case ast.OpLAnd:
		return Boolean(l.truthy() && r.truthy()), nil
	case ast.OpLOr:
		return Boolean(l.truthy() || r.truthy()), nil
	}
	return Value{}, fmt.Errorf("%w: %s", ErrNotConstant, ex.Op)
}

func convert(v Value, to *types.Meta) Value {
	switch to.Class() {
	case types.ClassReal, types.ClassComplex:
		return Real(v.asReal())
	}
	if to.Type() == types.Bool {
		return Boolean(v.truthy())
	}
	return Int(v.asInt())
}

// fit wraps an integer result to the width and signedness of t, the way
// the target register would.
func fit(v Value, t *types.Meta) Value {
	if v.Kind != KindInt || t == nil {
		return v
	}
	switch t.Type() {
	case types.I8:
		return Int(int64(int8(v.Int))) // #nosec G115
	case types.U8:
		return Int(int64(uint8(v.Int))) // #nosec G115
	case types.I16:
		return Int(int64(int16(v.Int))) // #nosec G115
	case types.U16:
		return Int(int64(uint16(v.Int))) // #nosec G115
	case types.I32:
		return Int(int64(int32(v.Int))) // #nosec G115
	case types.U32:
		return Int(int64(uint32(v.Int))) // #nosec G115
	case types.U64:
		return Uint(uint64(v.Int)) // #nosec G115
	}
	return v
}

func arith(op ast.Op, l, r Value) (Value, error) {
	if l.Kind == KindReal || r.Kind == KindReal {
		a, c := l.asReal(), r.asReal()
		switch op {
		case ast.OpAdd:
			return Real(a + c), nil
		case ast.OpSub:
			return Real(a - c), nil
		case ast.OpMul:
			return Real(a * c), nil
		case ast.OpDiv:
			if c == 0 {
				return Value{}, errors.New("division by zero")
			}
			return Real(a / c), nil
		}
		return Value{}, fmt.Errorf("%w: %s on reals", ErrNotConstant, op)
	}
	a, c := l.asInt(), r.asInt()
	switch op {
	case ast.OpAdd:
		return Int(a + c), nil
	case ast.OpSub:
		return Int(a - c), nil
	case ast.OpMul:
		return Int(a * c), nil
	case ast.OpDiv, ast.OpMod:
		if c == 0 {
			return Value{}, errors.New("division by zero")
		}
		if l.Unsigned || r.Unsigned {
			ua, uc := uint64(a), uint64(c) // #nosec G115
			if op == ast.OpDiv {
				return Uint(ua / uc), nil
			}
			return Uint(ua % uc), nil
		}
		if op == ast.OpDiv {
			return Int(a / c), nil
		}
		return Int(a % c), nil
	}
	return Value{}, fmt.Errorf("%w: %s", ErrNotConstant, op)
}

func bits(op ast.Op, binary bool, l, r Value) (Value, error) {
	a, c := l.asInt(), r.asInt()
	if !binary {
		return Int(^c), nil
	}
	switch op {
	case ast.OpBAnd:
		return Int(a & c), nil
	case ast.OpBOr:
		return Int(a | c), nil
	case ast.OpBXor:
		return Int(a ^ c), nil
	case ast.OpLSL:
		return Int(a << uint64(c)), nil // #nosec G115
	case ast.OpLSR:
		return Int(int64(uint64(a) >> uint64(c))), nil // #nosec G115
	case ast.OpASR:
		return Int(a >> uint64(c)), nil // #nosec G115
	}
	return Int(^c), nil
}

func compare(op ast.Op, l, r Value) Value {
	if l.Kind == KindInt && r.Kind == KindInt {
		return compareInts(op, l, r)
	}
	a, c := l.asReal(), r.asReal()
	switch op {
	case ast.OpEE:
		return Boolean(a == c)
	case ast.OpNE:
		return Boolean(a != c)
	case ast.OpGE:
		return Boolean(a >= c)
	case ast.OpLE:
		return Boolean(a <= c)
	case ast.OpLT:
		return Boolean(a < c)
	}
	return Boolean(a > c)
}

// compareInts compares without going through float64, which drops bits
// above 2^53.
func compareInts(op ast.Op, l, r Value) Value {
	var cmp int
	switch {
	case l.Unsigned && r.Unsigned:
		cmp = cmpOrdered(uint64(l.Int), uint64(r.Int)) // #nosec G115
	case l.Unsigned && l.Int < 0:
		cmp = 1
	case r.Unsigned && r.Int < 0:
		cmp = -1
	default:
		cmp = cmpOrdered(l.Int, r.Int)
	}
	switch op {
	case ast.OpEE:
		return Boolean(cmp == 0)
	case ast.OpNE:
		return Boolean(cmp != 0)
	case ast.OpGE:
		return Boolean(cmp >= 0)
	case ast.OpLE:
		return Boolean(cmp <= 0)
	case ast.OpLT:
		return Boolean(cmp < 0)
	}
	return Boolean(cmp > 0)
}

func cmpOrdered[T int64 | uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
