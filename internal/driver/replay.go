package driver

import (
	"fmt"

	"calvin/internal/ast"
	"calvin/internal/diag"
	"calvin/internal/script"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/trace"
	"calvin/internal/types"
)

// replayer plays the role of the upstream parser: every form is reduced
// bottom-up through the core constructors, children first.
type replayer struct {
	b      *ast.Builder
	t      *symbols.Table
	root   symbols.ScopeID
	scope  symbols.ScopeID
	fn     symbols.SymbolID
	data   ast.NodeID
	tracer trace.Tracer
	parent uint64
}

func newReplayer(tracer trace.Tracer, parent uint64, owner string) *replayer {
	in := types.NewInterner()
	rp := &replayer{
		b:      ast.NewBuilder(ast.Hints{}, in),
		t:      symbols.NewTable(symbols.Hints{}, in),
		tracer: tracer,
		parent: parent,
	}
	rp.root = rp.t.Program(owner)
	rp.scope = rp.root
	rp.data = rp.b.NewList(source.Span{})
	if tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeNode) {
		rp.t.OnInsert = rp.traceInsert
		rp.b.OnRewrite = rp.traceRewrite
	}
	return rp
}

func (rp *replayer) traceInsert(scope symbols.ScopeID, id symbols.SymbolID) {
	sym := rp.t.Symbol(id)
	detail := fmt.Sprintf("%s: %s %s", rp.t.Scope(scope).Owner, sym.Name, sym.Meta)
	trace.Point(rp.tracer, trace.ScopeNode, rp.parent, "insert", detail)
}

func (rp *replayer) traceRewrite(ev ast.RewriteEvent) {
	trace.Point(rp.tracer, trace.ScopeNode, rp.parent, ev.Kind.String(), ev.Detail)
}

func unexpected(d *script.Datum, format string, args ...any) error {
	return diag.Errorf(diag.SynUnexpectedForm, format, args...).At(d.Span)
}

// topLevel reduces one form of the program body.
func (rp *replayer) topLevel(d *script.Datum) error {
	return rp.statement(d, rp.data)
}

// statement reduces d and appends the resulting statement, if any, to list.
func (rp *replayer) statement(d *script.Datum, list ast.NodeID) error {
	switch d.Head() {
	case "decl":
		init, err := rp.decl(d)
		if err != nil || !init.IsValid() {
			return err
		}
		rp.b.Append(list, init)
		return nil
	case "fn":
		return rp.function(d)
	case "return":
		if rp.fn == symbols.NoSymbolID {
			return unexpected(d, "return outside of a function")
		}
		var value ast.NodeID
		switch len(d.Items) {
		case 1:
		case 2:
			v, err := rp.expr(d.Items[1])
			if err != nil {
				return err
			}
			value = v
		default:
			return unexpected(d, "return takes at most one value")
		}
		ret, err := rp.b.NewReturn(value, d.Span)
		if err != nil {
			return err
		}
		rp.b.Append(list, ret)
		return nil
	}
	e, err := rp.expr(d)
	if err != nil {
		return err
	}
	rp.b.Append(list, e)
	return nil
}

// decl declares (decl T name [init]) in the current table. With an
// initializer the assignment is returned as a statement.
func (rp *replayer) decl(d *script.Datum) (ast.NodeID, error) {
	if len(d.Items) < 3 || len(d.Items) > 4 || d.Items[2].Kind != script.KindSymbol {
		return ast.NoNodeID, unexpected(d, "expected (decl <type> <name> [init])")
	}
	meta, err := rp.typeOf(d.Items[1])
	if err != nil {
		return ast.NoNodeID, err
	}
	name := d.Items[2].Text
	sym := symbols.NewSymbol(name, meta, symbols.SymbolVar)
	sym.Span = d.Span
	if _, err := rp.t.Insert(rp.scope, sym); err != nil {
		return ast.NoNodeID, err
	}
	if len(d.Items) == 3 {
		return ast.NoNodeID, nil
	}
	value, err := rp.expr(d.Items[3])
	if err != nil {
		return ast.NoNodeID, err
	}
	target := rp.b.NewIdent(name, meta, d.Items[2].Span)
	return rp.b.NewExpr(ast.OpEqu, target, value, d.Span)
}

// function reduces (fn name ret (params...) stmts...). The signature is
// declared before the body so the body may call the function itself.
func (rp *replayer) function(d *script.Datum) error {
	if len(d.Items) < 4 || d.Items[1].Kind != script.KindSymbol || d.Items[3].Kind != script.KindList {
		return unexpected(d, "expected (fn <name> <type> (<params>) <stmt>...)")
	}
	ret, err := rp.typeOf(d.Items[2])
	if err != nil {
		return err
	}
	params, variadic, err := rp.params(d.Items[3])
	if err != nil {
		return err
	}
	id, err := rp.t.NewFunction(rp.b, rp.scope, d.Items[1].Text, ret, params, variadic, d.Span)
	if err != nil {
		return err
	}
	fn := rp.t.Function(id)

	outerScope, outerFn := rp.scope, rp.fn
	rp.scope, rp.fn = fn.Scope, id
	defer func() { rp.scope, rp.fn = outerScope, outerFn }()

	body := rp.b.NewList(d.Span)
	for _, stmt := range d.Items[4:] {
		if err := rp.statement(stmt, body); err != nil {
			return err
		}
	}
	return rp.t.AddBody(rp.b, id, body)
}

func (rp *replayer) params(d *script.Datum) (ast.NodeID, bool, error) {
	list := rp.b.NewList(d.Span)
	variadic := false
	for i, p := range d.Items {
		if p.Head() != "decl" || len(p.Items) < 3 || p.Items[2].Kind != script.KindSymbol {
			return ast.NoNodeID, false, unexpected(p, "expected (decl <type> <name>) parameter")
		}
		if len(p.Items) == 4 {
			if p.Items[3].Kind != script.KindEllipsis || i != len(d.Items)-1 {
				return ast.NoNodeID, false, unexpected(p, "only the last parameter may be variadic")
			}
			variadic = true
		} else if len(p.Items) > 4 {
			return ast.NoNodeID, false, unexpected(p, "expected (decl <type> <name>) parameter")
		}
		meta, err := rp.typeOf(p.Items[1])
		if err != nil {
			return ast.NoNodeID, false, err
		}
		rp.b.Append(list, rp.b.NewDecl(meta, p.Items[2].Text, p.Span))
	}
	return list, variadic, nil
}

// expr reduces an expression form to a normalized, typed node.
func (rp *replayer) expr(d *script.Datum) (ast.NodeID, error) {
	switch d.Kind {
	case script.KindInt, script.KindReal, script.KindChar:
		return rp.literal(d)
	case script.KindString:
		return rp.stringLit(d)
	case script.KindSymbol:
		if d.Text == "true" || d.Text == "false" {
			return rp.literal(d)
		}
		return rp.ident(d)
	case script.KindList:
		return rp.compound(d)
	}
	return ast.NoNodeID, unexpected(d, "unexpected %s in expression", d.Kind)
}

func (rp *replayer) ident(d *script.Datum) (ast.NodeID, error) {
	id, err := rp.t.Lookup(rp.scope, d.Text, symbols.DefaultBoundary)
	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			return ast.NoNodeID, de.At(d.Span)
		}
		return ast.NoNodeID, err
	}
	return rp.b.NewIdent(d.Text, rp.t.Symbol(id).Meta, d.Span), nil
}

// stringLit builds a char list; inside a function the text is also
// interned in the function's string table.
func (rp *replayer) stringLit(d *script.Datum) (ast.NodeID, error) {
	if rp.fn != symbols.NoSymbolID {
		if _, err := rp.t.StringConstant(rp.fn, d.Text); err != nil {
			return ast.NoNodeID, err
		}
	}
	return rp.b.NewString(d.Text, d.Span), nil
}

func (rp *replayer) compound(d *script.Datum) (ast.NodeID, error) {
	head := d.Head()
	switch head {
	case "":
		return ast.NoNodeID, unexpected(d, "expected an operator or form name")
	case "lit":
		if len(d.Items) != 3 {
			return ast.NoNodeID, unexpected(d, "expected (lit <type> <value>)")
		}
		meta, err := rp.typeOf(d.Items[1])
		if err != nil {
			return ast.NoNodeID, err
		}
		return rp.typedLiteral(meta, d.Items[2])
	case "cast":
		if len(d.Items) != 3 {
			return ast.NoNodeID, unexpected(d, "expected (cast <type> <expr>)")
		}
		meta, err := rp.typeOf(d.Items[1])
		if err != nil {
			return ast.NoNodeID, err
		}
		e, err := rp.expr(d.Items[2])
		if err != nil {
			return ast.NoNodeID, err
		}
		return rp.b.NewCast(meta, e, d.Span)
	case "call":
		return rp.call(d)
	case "list":
		list := rp.b.NewList(d.Span)
		for _, item := range d.Items[1:] {
			m, err := rp.expr(item)
			if err != nil {
				return ast.NoNodeID, err
			}
			rp.b.Append(list, m)
		}
		return list, nil
	}

	op, ok := ast.OpFromString(head)
	if !ok || op == ast.OpCast || op == ast.OpRet || op == ast.OpCall {
		return ast.NoNodeID, diag.Errorf(diag.SynUnknownOp, "unknown operator %s", head).
			With(head).At(d.Items[0].Span)
	}
	operands := make([]ast.NodeID, 0, 2)
	for _, item := range d.Items[1:] {
		e, err := rp.expr(item)
		if err != nil {
			return ast.NoNodeID, err
		}
		operands = append(operands, e)
	}
	switch {
	case op.IsUnary() && len(operands) == 1:
		return rp.b.NewUnary(op, operands[0], d.Span)
	case !op.IsUnary() && len(operands) == 2:
		return rp.b.NewExpr(op, operands[0], operands[1], d.Span)
	}
	return ast.NoNodeID, unexpected(d, "wrong number of operands for %s", head)
}

func (rp *replayer) call(d *script.Datum) (ast.NodeID, error) {
	if len(d.Items) < 2 || d.Items[1].Kind != script.KindSymbol {
		return ast.NoNodeID, unexpected(d, "expected (call <name> <args>...)")
	}
	callee := rp.b.NewIdent(d.Items[1].Text, rp.b.Types.Builtins().Void, d.Items[1].Span)
	args := rp.b.NewList(d.Span)
	for _, item := range d.Items[2:] {
		a, err := rp.expr(item)
		if err != nil {
			return ast.NoNodeID, err
		}
		rp.b.Append(args, a)
	}
	call, err := rp.b.NewCall(callee, args, d.Span)
	if err != nil {
		return ast.NoNodeID, err
	}
	if _, err := rp.t.Call(rp.b, call, rp.scope); err != nil {
		return ast.NoNodeID, err
	}
	return call, nil
}
