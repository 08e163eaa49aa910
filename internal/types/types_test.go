package types

import "testing"

func TestParseScalar(t *testing.T) {
	cases := []struct {
		in    string
		tag   DataType
		class DataClass
		size  int
	}{
		{"bool", Bool, ClassIntegral, 1},
		{"char", Char, ClassIntegral, 1},
		{"u16", U16, ClassIntegral, 2},
		{"i32", I32, ClassIntegral, 4},
		{"r32", R32, ClassReal, 4},
		{"x32", X32, ClassComplex, 8},
		{"i64", I64, ClassIntegral, 8},
		{"r64", R64, ClassReal, 8},
		{"x64", X64, ClassComplex, 16},
		{"void", Void, ClassNone, 0},
		{"string", Void, ClassNone, 0},
	}
	for _, tc := range cases {
		m := Parse(tc.in)
		if m.Type() != tc.tag {
			t.Fatalf("%s: expected tag %v, got %v", tc.in, tc.tag, m.Type())
		}
		if m.Class() != tc.class {
			t.Fatalf("%s: expected class %v, got %v", tc.in, tc.class, m.Class())
		}
		if m.ByteSize() != tc.size {
			t.Fatalf("%s: expected size %d, got %d", tc.in, tc.size, m.ByteSize())
		}
		if m.Child() != nil {
			t.Fatalf("%s: scalar must not have a child", tc.in)
		}
	}
}

func TestParseList(t *testing.T) {
	m := Parse("r64[8]")
	if !m.IsList() || m.Count() != 8 {
		t.Fatalf("expected list of 8, got %v count=%d", m.Type(), m.Count())
	}
	if m.Child() == nil || m.Child().Type() != R64 {
		t.Fatalf("expected r64 child, got %v", m.Child())
	}
	if m.Class() != ClassObject || m.ByteSize() != 0 {
		t.Fatalf("lists are objects without intrinsic size")
	}
	if got := m.String(); got != "r64[8]" {
		t.Fatalf("expected r64[8], got %q", got)
	}

	nested := Parse("i8[4][2]")
	if nested.Count() != 2 || nested.Child().Count() != 4 || nested.Child().Child().Type() != I8 {
		t.Fatalf("unexpected nested list shape: %s", nested)
	}

	open := Parse("i32[]")
	if open.Count() != 0 || open.Child().Type() != I32 {
		t.Fatalf("expected open list of i32, got %s", open)
	}
}

func TestEquality(t *testing.T) {
	if !Parse("i32[3]").Equal(Parse("i32[3]")) {
		t.Fatal("i32[3] must equal i32[3]")
	}
	if Parse("i32[3]").Equal(Parse("i64[3]")) {
		t.Fatal("i32[3] must differ from i64[3]")
	}
	a, b := Parse("u8"), Parse("u8")
	if !a.Equal(b) || !b.Equal(a) || !a.Equal(a) {
		t.Fatal("equality must be reflexive and symmetric")
	}
	if Parse("i32").Equal(Parse("i32[1]")) {
		t.Fatal("scalar must differ from list")
	}
	if !Parse("i8[2][2]").Equal(Parse("i8[5][7]")) {
		t.Fatal("element counts are not part of list identity")
	}
}

func TestCanCast(t *testing.T) {
	cases := []struct {
		to, from string
		want     bool
	}{
		{"i32", "bool", true},
		{"bool", "i32", false},
		{"r64", "i32", true},
		{"i32", "r64", false},
		{"x64", "r64", true},
		{"r32", "x32", false},
		{"i64", "i32", true},
		{"u8", "i8", true},
		{"i32", "i32[4]", false},
		{"i32[4]", "i32", false},
	}
	for _, tc := range cases {
		if got := CanCast(Parse(tc.to), Parse(tc.from)); got != tc.want {
			t.Fatalf("CanCast(%s, %s) = %v, want %v", tc.to, tc.from, got, tc.want)
		}
	}
}

func TestWiden(t *testing.T) {
	got, ok := Widen(Parse("i32"), Parse("r64"))
	if !ok || got.Type() != R64 {
		t.Fatalf("expected r64, got %v ok=%v", got, ok)
	}
	if _, ok := Widen(Parse("r64"), Parse("i32[2]")); ok {
		t.Fatal("list must not widen")
	}
}

func TestShort(t *testing.T) {
	cases := map[string]string{
		"bool":      "b",
		"char":      "c",
		"i32":       "i32",
		"void":      "v",
		"i8[]":      "i8l",
		"char[4]":   "cl",
		"r64[2][3]": "r64ll",
	}
	for in, want := range cases {
		if got := Parse(in).Short(); got != want {
			t.Fatalf("Short(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPromote(t *testing.T) {
	base := Parse("i16")
	l := Promote(base)
	if !l.IsList() || l.Child() != base || l.Name() != "i16[]" {
		t.Fatalf("unexpected promoted list: %s (%s)", l, l.Name())
	}
	if got := ListOf(base, 3).String(); got != "i16[3]" {
		t.Fatalf("expected i16[3], got %q", got)
	}
}

func TestInternerSharesMeta(t *testing.T) {
	in := NewInterner()
	if in.Intern("i32") != in.Intern("i32") {
		t.Fatal("expected one Meta per spelling")
	}
	if in.Builtins().I32 != in.Of(I32) {
		t.Fatal("builtin i32 must be the interned one")
	}
	empty := in.Builtins().List
	if !empty.IsList() || empty.Child() != nil {
		t.Fatalf("expected child-less list, got %s", empty)
	}
	if got := empty.String(); got != "list[0]" {
		t.Fatalf("expected list[0], got %q", got)
	}
}
