package types

// CanCast reports whether from widens implicitly to to: neither side is an
// object, the class does not decrease and the width does not shrink.
// There is no narrowing and no explicit override.
func CanCast(to, from *Meta) bool {
	if to == nil || from == nil {
		return false
	}
	tc, fc := to.Class(), from.Class()
	if tc == ClassObject || fc == ClassObject {
		return false
	}
	return fc <= tc && from.ByteSize() <= to.ByteSize()
}

// Widen picks the common type of a and b, if one side widens to the other.
// The first result is the target; ok is false when neither direction is legal.
func Widen(a, b *Meta) (*Meta, bool) {
	switch {
	case a.Equal(b):
		return a, true
	case CanCast(a, b):
		return a, true
	case CanCast(b, a):
		return b, true
	}
	return nil, false
}
