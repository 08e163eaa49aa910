package ast

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of that node.
func (b *Builder) Walk(id NodeID, fn func(NodeID) bool) {
	n := b.Node(id)
	if n == nil || !fn(id) {
		return
	}
	switch n.Kind {
	case KindList:
		for _, m := range b.Members(id) {
			b.Walk(m, fn)
		}
	case KindExpr:
		ex := b.Expr(id)
		left, right := ex.Left, ex.Right
		b.Walk(left, fn)
		b.Walk(right, fn)
	case KindDecl:
		d := b.Decl(id)
		tr, ident := d.TypeRef, d.Ident
		b.Walk(tr, fn)
		b.Walk(ident, fn)
	}
}
