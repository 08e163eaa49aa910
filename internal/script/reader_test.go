package script

import (
	"testing"

	"github.com/nalgeon/be"

	"calvin/internal/diag"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"x", KindSymbol, "x"},
		{"i8[]", KindSymbol, "i8[]"},
		{">>>", KindSymbol, ">>>"},
		{"-", KindSymbol, "-"},
		{"42", KindInt, "42"},
		{"-7", KindInt, "-7"},
		{"0x1f", KindInt, "0x1f"},
		{"2.5", KindReal, "2.5"},
		{"1e3", KindReal, "1e3"},
		{"...", KindEllipsis, "..."},
		{`"hi there"`, KindString, "hi there"},
		{`'a'`, KindChar, "a"},
	}
	for _, test := range tests {
		forms, err := ParseString(1, test.input)
		be.Err(t, err, nil)
		be.Equal(t, len(forms), 1)
		be.Equal(t, forms[0].Kind, test.kind)
		be.Equal(t, forms[0].Text, test.text)
	}
}

func TestParseNestedLists(t *testing.T) {
	forms, err := ParseString(1, "(fn add i32 ((decl i32 a) (decl i32 b)) (return (+ a b)))")
	be.Err(t, err, nil)
	be.Equal(t, len(forms), 1)

	fn := forms[0]
	be.Equal(t, fn.Head(), "fn")
	be.Equal(t, len(fn.Items), 5)
	be.Equal(t, fn.Items[3].Items[1].String(), "(decl i32 b)")
	be.Equal(t, fn.String(), "(fn add i32 ((decl i32 a) (decl i32 b)) (return (+ a b)))")
}

func TestParseSpans(t *testing.T) {
	forms, err := ParseString(3, "  (+ 1 22)")
	be.Err(t, err, nil)
	list := forms[0]
	be.Equal(t, list.Span.File, 3)
	be.Equal(t, list.Span.Start, uint32(2))
	be.Equal(t, list.Span.End, uint32(10))
	be.Equal(t, list.Items[2].Span.Start, uint32(7))
	be.Equal(t, list.Items[2].Span.End, uint32(9))
}

func TestParseCommentsAndEscapes(t *testing.T) {
	src := "; header\n(decl i32 a) ; trailing\n\"a\\\"b\\\\c\"\n"
	forms, err := ParseString(1, src)
	be.Err(t, err, nil)
	be.Equal(t, len(forms), 2)
	be.Equal(t, forms[1].Text, `a"b\\c`)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"(decl i32 a", diag.ErrUnclosedParen},
		{")", diag.ErrUnexpectedForm},
		{`"open`, diag.ErrUnclosedString},
		{`'ab'`, diag.ErrBadLiteral},
	}
	for _, test := range tests {
		_, err := ParseString(1, test.input)
		be.Err(t, err, test.want)
	}
}
