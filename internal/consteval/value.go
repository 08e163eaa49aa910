package consteval

import (
	"fmt"
	"strconv"
)

// ValueKind is the evaluation domain of a constant.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindReal
	KindBool
)

// Value is a folded constant. Integral and char types fold to KindInt,
// real and complex types to KindReal.
type Value struct {
	Kind ValueKind
	Int  int64
	// Unsigned marks an Int holding the bits of a u64.
	Unsigned bool
	Real     float64
	Bool     bool
}

func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }
func Uint(v uint64) Value { return Value{Kind: KindInt, Int: int64(v), Unsigned: true} } // #nosec G115
func Real(v float64) Value { return Value{Kind: KindReal, Real: v} }
func Boolean(v bool) Value { return Value{Kind: KindBool, Bool: v} }

func (v Value) String() string {
	switch v.Kind {
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	if v.Unsigned {
		return strconv.FormatUint(uint64(v.Int), 10) // #nosec G115
	}
	return strconv.FormatInt(v.Int, 10)
}

func (v Value) asReal() float64 {
	switch v.Kind {
	case KindReal:
		return v.Real
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	}
	if v.Unsigned {
		return float64(uint64(v.Int)) // #nosec G115
	}
	return float64(v.Int)
}

func (v Value) asInt() int64 {
	switch v.Kind {
	case KindReal:
		return int64(v.Real)
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.Int
}

func (v Value) truthy() bool {
	switch v.Kind {
	case KindReal:
		return v.Real != 0
	case KindBool:
		return v.Bool
	}
	return v.Int != 0
}

// fromLiteral converts a literal payload.
func fromLiteral(raw any) (Value, error) {
	switch x := raw.(type) {
	case bool:
		return Boolean(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Real(float64(x)), nil
	case float64:
		return Real(x), nil
	case complex64:
		return Real(float64(real(x))), nil
	case complex128:
		return Real(real(x)), nil
	}
	return Value{}, fmt.Errorf("unsupported literal %T", raw)
}
