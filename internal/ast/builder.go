package ast

import (
	"calvin/internal/source"
	"calvin/internal/types"
)

type Hints struct{ Nodes, Exprs uint }

// RewriteKind classifies a structural change made while normalizing.
type RewriteKind uint8

const (
	RewriteRotate RewriteKind = iota
	RewriteCast
)

func (k RewriteKind) String() string {
	if k == RewriteRotate {
		return "rotate"
	}
	return "cast"
}

// RewriteEvent is reported through Builder.OnRewrite.
type RewriteEvent struct {
	Kind   RewriteKind
	Node   NodeID
	Detail string
}

// Builder owns every node of one compilation unit. Constructors receive
// already-built children, so trees are assembled bottom-up.
type Builder struct {
	Nodes    *Arena[Node]
	Literals *Arena[LiteralData]
	Strings  *Arena[StringData]
	Lists    *Arena[ListData]
	Idents   *Arena[IdentData]
	Exprs    *Arena[ExprData]
	Decls    *Arena[DeclData]
	Types    *types.Interner

	// OnRewrite, when set, observes rotations and implicit casts.
	OnRewrite func(RewriteEvent)
}

func NewBuilder(hints Hints, in *types.Interner) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 7
	}
	if in == nil {
		in = types.NewInterner()
	}
	return &Builder{
		Nodes:    NewArena[Node](hints.Nodes),
		Literals: NewArena[LiteralData](hints.Exprs),
		Strings:  NewArena[StringData](1 << 4),
		Lists:    NewArena[ListData](1 << 5),
		Idents:   NewArena[IdentData](hints.Exprs),
		Exprs:    NewArena[ExprData](hints.Exprs),
		Decls:    NewArena[DeclData](1 << 5),
		Types:    in,
	}
}

func (b *Builder) newNode(kind Kind, meta *types.Meta, sp source.Span, payload uint32) NodeID {
	return NodeID(b.Nodes.Allocate(Node{
		Kind:    kind,
		Type:    meta,
		Span:    sp,
		Payload: PayloadID(payload),
	}))
}

// Node returns the node header, or nil for NoNodeID.
func (b *Builder) Node(id NodeID) *Node {
	return b.Nodes.Get(uint32(id))
}

// TypeOf returns the current type of id, nil for missing nodes.
func (b *Builder) TypeOf(id NodeID) *types.Meta {
	if n := b.Node(id); n != nil {
		return n.Type
	}
	return nil
}

func (b *Builder) SpanOf(id NodeID) source.Span {
	if n := b.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (b *Builder) KindOf(id NodeID) (Kind, bool) {
	if n := b.Node(id); n != nil {
		return n.Kind, true
	}
	return 0, false
}

func (b *Builder) payload(id NodeID, kind Kind) uint32 {
	n := b.Node(id)
	if n == nil || n.Kind != kind {
		return 0
	}
	return uint32(n.Payload)
}

func (b *Builder) Literal(id NodeID) *LiteralData {
	return b.Literals.Get(b.payload(id, KindLiteral))
}

func (b *Builder) StringLit(id NodeID) *StringData {
	return b.Strings.Get(b.payload(id, KindString))
}

func (b *Builder) List(id NodeID) *ListData {
	return b.Lists.Get(b.payload(id, KindList))
}

func (b *Builder) Ident(id NodeID) *IdentData {
	return b.Idents.Get(b.payload(id, KindIdent))
}

func (b *Builder) Expr(id NodeID) *ExprData {
	return b.Exprs.Get(b.payload(id, KindExpr))
}

func (b *Builder) Decl(id NodeID) *DeclData {
	return b.Decls.Get(b.payload(id, KindDecl))
}

// Retype overwrites the type of a node without normalizing it.
func (b *Builder) Retype(id NodeID, meta *types.Meta) {
	if n := b.Node(id); n != nil {
		n.Type = meta
	}
}

func (b *Builder) NewTypeRef(meta *types.Meta, sp source.Span) NodeID {
	return b.newNode(KindTypeRef, meta, sp, 0)
}

func (b *Builder) NewIdent(name string, meta *types.Meta, sp source.Span) NodeID {
	p := b.Idents.Allocate(IdentData{Name: name})
	return b.newNode(KindIdent, meta, sp, p)
}

// NewDecl builds a declaration together with its type and name children.
func (b *Builder) NewDecl(meta *types.Meta, name string, sp source.Span) NodeID {
	tr := b.NewTypeRef(meta, sp)
	ident := b.NewIdent(name, meta, sp)
	p := b.Decls.Allocate(DeclData{TypeRef: tr, Ident: ident})
	return b.newNode(KindDecl, meta, sp, p)
}

// DeclName returns the identifier name of a declaration.
func (b *Builder) DeclName(id NodeID) string {
	d := b.Decl(id)
	if d == nil {
		return ""
	}
	if ident := b.Ident(d.Ident); ident != nil {
		return ident.Name
	}
	return ""
}

func (b *Builder) emit(kind RewriteKind, id NodeID, detail string) {
	if b.OnRewrite != nil {
		b.OnRewrite(RewriteEvent{Kind: kind, Node: id, Detail: detail})
	}
}
