package ast

import (
	"calvin/internal/source"
	"calvin/internal/types"
)

type Kind uint8

const (
	KindLiteral Kind = iota
	KindString
	KindList
	KindTypeRef
	KindIdent
	KindExpr
	KindDecl
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTypeRef:
		return "type"
	case KindIdent:
		return "ident"
	case KindExpr:
		return "expr"
	case KindDecl:
		return "decl"
	}
	return "unknown"
}

// Node is the shared header of every variant. Type is recomputed whenever
// an expression is normalized.
type Node struct {
	Kind    Kind
	Type    *types.Meta
	Span    source.Span
	Payload PayloadID
}

type LiteralData struct {
	Value any
}

type StringData struct {
	Value string // escaped and NFC-normalized
}

type ListData struct {
	Members []NodeID
}

type IdentData struct {
	Name string
}

// ExprData holds an operator and its operands. Unary operators keep their
// operand in Right and leave Left empty.
type ExprData struct {
	Op    Op
	Left  NodeID
	Right NodeID
}

type DeclData struct {
	TypeRef NodeID
	Ident   NodeID
}
