package ast

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"calvin/internal/source"
	"calvin/internal/types"
)

// Scalar lists the Go types a literal may hold.
type Scalar interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// NewLiteral allocates a constant of type meta.
func NewLiteral[T Scalar](b *Builder, meta *types.Meta, v T, sp source.Span) NodeID {
	p := b.Literals.Allocate(LiteralData{Value: v})
	return b.newNode(KindLiteral, meta, sp, p)
}

// LiteralAs returns the literal value if id is a literal holding a T.
func LiteralAs[T Scalar](b *Builder, id NodeID) (T, bool) {
	var zero T
	lit := b.Literal(id)
	if lit == nil {
		return zero, false
	}
	v, ok := lit.Value.(T)
	return v, ok
}

// SetLiteral replaces the value of a literal node.
func SetLiteral[T Scalar](b *Builder, id NodeID, v T) bool {
	lit := b.Literal(id)
	if lit == nil {
		return false
	}
	lit.Value = v
	return true
}

// NewString allocates a string literal typed as a char list of its length.
func (b *Builder) NewString(s string, sp source.Span) NodeID {
	v := escape(s)
	p := b.Strings.Allocate(StringData{Value: v})
	return b.newNode(KindString, types.ListOf(b.Types.Of(types.Char), len(v)), sp, p)
}

// SetString replaces the value, escaping it again.
func (b *Builder) SetString(id NodeID, s string) bool {
	sd := b.StringLit(id)
	if sd == nil {
		return false
	}
	sd.Value = escape(s)
	b.Retype(id, types.ListOf(b.Types.Of(types.Char), len(sd.Value)))
	return true
}

// escape doubles every lone backslash; an existing "\\" pair is kept.
func escape(s string) string {
	s = norm.NFC.String(s)
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		sb.WriteString(`\\`)
		if i+1 < len(s) && s[i+1] == '\\' {
			i++
		}
	}
	return sb.String()
}
