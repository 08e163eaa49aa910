package types

import (
	"strconv"
	"strings"
)

var tagByName = map[string]DataType{
	"bool": Bool,
	"char": Char,
	"u8":   U8,
	"i8":   I8,
	"u16":  U16,
	"i16":  I16,
	"u32":  U32,
	"i32":  I32,
	"r32":  R32,
	"x32":  X32,
	"u64":  U64,
	"i64":  I64,
	"r64":  R64,
	"x64":  X64,
	"void": Void,
}

// TagOf maps a type spelling to its tag. A trailing ']' marks a list;
// unknown names fall back to Void.
func TagOf(s string) DataType {
	if strings.HasSuffix(s, "]") {
		return List
	}
	if t, ok := tagByName[s]; ok {
		return t
	}
	return Void
}

// Parse builds a Meta from its canonical spelling. For lists the prefix
// before the last '[' is parsed recursively as the element type and the
// bracketed number, if any, becomes the element count.
func Parse(s string) *Meta {
	m := &Meta{tag: TagOf(s), name: s}
	if m.tag != List {
		return m
	}
	open := strings.LastIndex(s, "[")
	if open < 0 {
		return m
	}
	inner := s[open+1 : len(s)-1]
	if inner != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(inner)); err == nil && n >= 0 {
			m.count = n
		}
	}
	m.child = Parse(s[:open])
	return m
}

// ListOf builds a list of elem with a known element count.
func ListOf(elem *Meta, count int) *Meta {
	return &Meta{
		tag:   List,
		name:  elem.Name() + "[" + strconv.Itoa(count) + "]",
		child: elem,
		count: count,
	}
}
