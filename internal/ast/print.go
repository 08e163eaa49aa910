package ast

import (
	"fmt"
	"strings"

	"calvin/internal/types"
)

// Format renders a node tree the way the assembly listing shows it: one
// tab per nesting level and pre in front of every line (";" for comments).
func (b *Builder) Format(id NodeID, indent int, pre string) string {
	var sb strings.Builder
	b.format(&sb, id, indent, pre)
	return sb.String()
}

func (b *Builder) format(sb *strings.Builder, id NodeID, indent int, pre string) {
	n := b.Node(id)
	lead := strings.Repeat("\t", indent) + pre
	if n == nil {
		sb.WriteString(lead + "<nil>")
		return
	}
	switch n.Kind {
	case KindTypeRef:
		sb.WriteString(lead + n.Type.String())
	case KindLiteral:
		sb.WriteString(lead + n.Type.String() + " " + literalText(n.Type, b.Literal(id).Value))
	case KindString:
		sb.WriteString(lead + `"` + b.StringLit(id).Value + `"`)
	case KindIdent:
		sb.WriteString(lead + b.Ident(id).Name)
	case KindDecl:
		d := b.Decl(id)
		sb.WriteString(lead + n.Type.String() + " " + b.Ident(d.Ident).Name)
	case KindList:
		members := b.Members(id)
		fmt.Fprintf(sb, "%s%s : %d[\n", lead, n.Type, len(members))
		for _, m := range members {
			b.format(sb, m, indent+1, pre)
			sb.WriteByte('\n')
		}
		if len(members) == 0 {
			sb.WriteString(strings.Repeat("\t", indent+1) + pre + "no members\n")
		}
		sb.WriteString(lead + "]")
	case KindExpr:
		ex := b.Expr(id)
		fmt.Fprintf(sb, "%s(%s %s\n", lead, n.Type, ex.Op)
		for _, child := range [...]NodeID{ex.Left, ex.Right} {
			if !child.IsValid() {
				continue
			}
			b.format(sb, child, indent+1, pre)
			sb.WriteByte('\n')
		}
		sb.WriteString(lead + ")")
	}
}

func literalText(t *types.Meta, v any) string {
	if t.Type() == types.Char {
		switch c := v.(type) {
		case rune:
			return "'" + string(c) + "'"
		case byte:
			return "'" + string(rune(c)) + "'"
		}
	}
	return fmt.Sprint(v)
}
