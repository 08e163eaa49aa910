package types

// Builtins stores shared metas for the scalar tags.
type Builtins struct {
	Bool *Meta
	Char *Meta
	I32  *Meta
	I64  *Meta
	R64  *Meta
	Void *Meta
	List *Meta // child-less list used for empty list nodes
}

// Interner hands out one Meta per canonical spelling so the same type
// recurs by reference.
type Interner struct {
	index    map[string]*Meta
	builtins Builtins
}

// NewInterner constructs an interner seeded with the scalar builtins.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]*Meta, 32)}
	in.index[List.String()] = New(List, List.String(), nil)
	for name := range tagByName {
		in.Intern(name)
	}
	in.builtins = Builtins{
		Bool: in.Intern("bool"),
		Char: in.Intern("char"),
		I32:  in.Intern("i32"),
		I64:  in.Intern("i64"),
		R64:  in.Intern("r64"),
		Void: in.Intern("void"),
		List: in.Intern("list"),
	}
	return in
}

// Builtins returns shared metas for common scalars.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern parses s once and returns the shared Meta afterwards.
func (in *Interner) Intern(s string) *Meta {
	if m, ok := in.index[s]; ok {
		return m
	}
	m := Parse(s)
	in.index[s] = m
	return m
}

// Of returns the shared Meta for a scalar tag.
func (in *Interner) Of(t DataType) *Meta {
	return in.Intern(t.String())
}

// Len reports the number of distinct spellings interned so far.
func (in *Interner) Len() int {
	return len(in.index)
}
