package types

import (
	"fmt"
	"strconv"
)

// DataType is the closed set of storage tags.
type DataType uint8

const (
	Bool DataType = iota
	Char
	U8
	I8
	U16
	I16
	U32
	I32
	R32
	X32
	U64
	I64
	R64
	X64
	Void
	List
)

func (t DataType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Char:
		return "char"
	case U8:
		return "u8"
	case I8:
		return "i8"
	case U16:
		return "u16"
	case I16:
		return "i16"
	case U32:
		return "u32"
	case I32:
		return "i32"
	case R32:
		return "r32"
	case X32:
		return "x32"
	case U64:
		return "u64"
	case I64:
		return "i64"
	case R64:
		return "r64"
	case X64:
		return "x64"
	case Void:
		return "void"
	case List:
		return "list"
	default:
		return fmt.Sprintf("DataType(%d)", t)
	}
}

// Short returns the abbreviation used in mangled signatures.
// Lists are handled by Meta.Short since they depend on the element.
func (t DataType) Short() string {
	switch t {
	case Bool:
		return "b"
	case Char:
		return "c"
	case Void:
		return "v"
	case List:
		return "l"
	default:
		return t.String()
	}
}

// Class derives the cast class of a tag.
func (t DataType) Class() DataClass {
	switch t {
	case Bool, Char, U8, I8, U16, I16, U32, I32, U64, I64:
		return ClassIntegral
	case R32, R64:
		return ClassReal
	case X32, X64:
		return ClassComplex
	case Void:
		return ClassNone
	default:
		return ClassObject
	}
}

// ByteSize is the fixed width of a scalar tag. Void and List carry no
// intrinsic size; a list's storage is computed by the layout engine.
func (t DataType) ByteSize() int {
	switch t {
	case Bool, Char, U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, R32:
		return 4
	case X32, U64, I64, R64:
		return 8
	case X64:
		return 16
	default:
		return 0
	}
}

// DataClass orders types for widening: Integral < Real < Complex.
// Object never participates in implicit casts.
type DataClass uint8

const (
	ClassNone DataClass = iota
	ClassIntegral
	ClassReal
	ClassComplex
	ClassObject
)

func (c DataClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassIntegral:
		return "integral"
	case ClassReal:
		return "real"
	case ClassComplex:
		return "complex"
	case ClassObject:
		return "object"
	default:
		return fmt.Sprintf("DataClass(%d)", c)
	}
}

// Meta is the canonical description of a type. A Meta is never mutated
// after construction, so one pointer may be shared by every node and
// symbol that carries the same type.
type Meta struct {
	tag   DataType
	name  string
	child *Meta // present iff tag == List
	count int   // list element count, 0 when unknown
}

// New builds a Meta from an explicit tag, name and optional child.
func New(tag DataType, name string, child *Meta) *Meta {
	return &Meta{tag: tag, name: name, child: child}
}

// Promote wraps m into a one-level list of unknown length.
func Promote(m *Meta) *Meta {
	return &Meta{tag: List, name: m.Name() + "[]", child: m}
}

func (m *Meta) Type() DataType { return m.tag }

func (m *Meta) Class() DataClass { return m.tag.Class() }

// Name is the spelling the type was built from.
func (m *Meta) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

func (m *Meta) Child() *Meta { return m.child }

// Count is the element count of a list type.
func (m *Meta) Count() int { return m.count }

// ByteSize is the intrinsic width of the tag (zero for lists and void).
func (m *Meta) ByteSize() int { return m.tag.ByteSize() }

// IsList reports whether m is a list type.
func (m *Meta) IsList() bool { return m != nil && m.tag == List }

// Equal compares structurally. Lists compare their element types;
// the element count is not part of a type's identity.
func (m *Meta) Equal(other *Meta) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.tag != other.tag {
		return false
	}
	if m.tag == List {
		return m.child.Equal(other.child)
	}
	return true
}

// Short renders the abbreviation used in mangled signatures.
func (m *Meta) Short() string {
	if m.tag == List {
		if m.child == nil {
			return List.Short()
		}
		return m.child.Short() + "l"
	}
	return m.tag.Short()
}

// String renders the canonical form, e.g. "i32" or "r64[8]".
func (m *Meta) String() string {
	if m == nil {
		return "<nil>"
	}
	if m.tag == List {
		count := "[" + strconv.Itoa(m.count) + "]"
		if m.child == nil {
			return List.String() + count
		}
		return m.child.String() + count
	}
	return m.tag.String()
}
