package symbols

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"calvin/internal/ast"
	"calvin/internal/diag"
	"calvin/internal/source"
	"calvin/internal/types"
)

// VariadicMarker ends the mangled name of a function whose last parameter
// takes the remaining arguments.
const VariadicMarker = "E"

// Function is the payload of a SymbolFunction symbol. The symbol's name is
// the mangled signature; Name keeps the source name.
type Function struct {
	Name     string
	Return   *types.Meta
	Scope    ScopeID // parameters and locals
	Strings  ScopeID // private string constants
	Params   ast.NodeID
	Body     ast.NodeID
	Epilogue ast.NodeID
	Variadic bool
	Symbol   SymbolID
}

// Signature mangles name with the short forms of the parameter types:
// "add.i32.i32", or "noop.v" without parameters.
func Signature(name string, params []*types.Meta) string {
	var sb strings.Builder
	sb.WriteString(name)
	if len(params) == 0 {
		sb.WriteString("." + types.Void.Short())
		return sb.String()
	}
	for _, p := range params {
		sb.WriteString("." + p.Short())
	}
	return sb.String()
}

// ListSignature mangles name with the types of the members of list. A
// non-list node counts as a single argument.
func ListSignature(b *ast.Builder, name string, list ast.NodeID) string {
	if !list.IsValid() {
		return Signature(name, nil)
	}
	if kind, _ := b.KindOf(list); kind != ast.KindList {
		return Signature(name, []*types.Meta{b.TypeOf(list)})
	}
	members := b.Members(list)
	metas := make([]*types.Meta, 0, len(members))
	for _, m := range members {
		metas = append(metas, b.TypeOf(m))
	}
	return Signature(name, metas)
}

// NewFunction declares a function in enclosing. params is a list of
// declarations which become the first symbols of the nested table. When
// variadic is set the last parameter absorbs the argument tail and the
// mangled name carries VariadicMarker.
func (t *Table) NewFunction(b *ast.Builder, enclosing ScopeID, name string, ret *types.Meta, params ast.NodeID, variadic bool, sp source.Span) (SymbolID, error) {
	if !params.IsValid() {
		params = b.NewList(sp)
	}
	sig := ListSignature(b, name, params)
	if variadic && b.Len(params) > 0 {
		sig += VariadicMarker
	} else {
		variadic = false
	}

	fn := &Function{
		Name:     name,
		Return:   ret,
		Params:   params,
		Body:     b.NewList(sp),
		Epilogue: b.NewList(sp),
		Variadic: variadic,
	}
	sym := NewSymbol(sig, ret, SymbolFunction)
	sym.Span = sp
	sym.Func = fn
	id, err := t.Insert(enclosing, sym)
	if err != nil {
		return NoSymbolID, err
	}
	fn.Symbol = id
	fn.Scope = t.NewScope(ScopeFunction, AccessPrivate, enclosing, sig)
	fn.Strings = t.NewScope(ScopeProgram, AccessPrivate, NoScopeID, sig)

	for _, p := range b.Members(params) {
		pname := b.DeclName(p)
		if pname == "" {
			continue
		}
		psym := NewSymbol(pname, b.TypeOf(p), SymbolParam)
		psym.Span = b.SpanOf(p)
		if _, err := t.Insert(fn.Scope, psym); err != nil {
			return NoSymbolID, err
		}
	}
	return id, nil
}

// Function returns the function payload of id, or nil.
func (t *Table) Function(id SymbolID) *Function {
	if sym := t.Symbol(id); sym != nil {
		return sym.Func
	}
	return nil
}

// CallSignature mangles a CALL expression from its callee name and the
// types of its arguments.
func CallSignature(b *ast.Builder, call ast.NodeID) (string, error) {
	ex := b.Expr(call)
	if ex == nil || ex.Op != ast.OpCall {
		kind, _ := b.KindOf(call)
		what := kind.String()
		if ex != nil {
			what = ex.Op.String()
		}
		return "", diag.Errorf(diag.SemaNotCallable, "%s is not a function", what).
			With(what).At(b.SpanOf(call))
	}
	ident := b.Ident(ex.Left)
	if ident == nil {
		return "", diag.Errorf(diag.SemaNotCallable, "call target is not an identifier").At(b.SpanOf(call))
	}
	return ListSignature(b, ident.Name, ex.Right), nil
}

// FindFunction resolves a CALL expression: exact signature first, then a
// variadic candidate, then the same two steps in the parent when scope is
// private.
func (t *Table) FindFunction(b *ast.Builder, call ast.NodeID, scope ScopeID) (SymbolID, error) {
	sig, err := CallSignature(b, call)
	if err != nil {
		return NoSymbolID, err
	}
	if id, ok := t.findSignature(scope, sig); ok {
		return id, nil
	}
	if s := t.Scope(scope); s != nil && s.Access == AccessPrivate && s.Parent.IsValid() {
		if id, ok := t.findSignature(s.Parent, sig); ok {
			return id, nil
		}
	}
	return NoSymbolID, diag.Errorf(diag.SemaUndefinedSymbol, "function %s is not defined", sig).
		With(sig).At(b.SpanOf(call))
}

func (t *Table) findSignature(scope ScopeID, sig string) (SymbolID, bool) {
	if id, ok := t.Find(scope, sig); ok {
		return id, true
	}
	return t.findVariadic(scope, sig)
}

// findVariadic accepts the first symbol sharing the call's base name whose
// name ends in the marker and whose remaining text prefixes the call
// signature.
func (t *Table) findVariadic(scope ScopeID, sig string) (SymbolID, bool) {
	dot := strings.Index(sig, ".")
	if dot < 0 {
		return NoSymbolID, false
	}
	for _, i := range t.QueryPrefix(scope, sig[:dot]) {
		id := t.At(scope, i)
		sym := t.Symbol(id)
		fixed, ok := strings.CutSuffix(sym.Name, VariadicMarker)
		if !ok || !sym.IsFunction() {
			continue
		}
		if strings.HasPrefix(sig, fixed) {
			sym.Lookups++
			return id, true
		}
	}
	return NoSymbolID, false
}

// Call resolves call in scope and types the callee and the call with the
// function's return type.
func (t *Table) Call(b *ast.Builder, call ast.NodeID, scope ScopeID) (SymbolID, error) {
	id, err := t.FindFunction(b, call, scope)
	if err != nil {
		return NoSymbolID, err
	}
	fn := t.Function(id)
	b.Retype(b.Expr(call).Left, fn.Return)
	if _, err := b.Normalize(call); err != nil {
		return NoSymbolID, err
	}
	return id, nil
}

// AddBody attaches body to fn. Top-level return statements of a non-void
// function whose value type differs from the return type get an implicit
// cast; void functions are left as written.
func (t *Table) AddBody(b *ast.Builder, fnID SymbolID, body ast.NodeID) error {
	fn := t.Function(fnID)
	if fn == nil {
		return diag.Errorf(diag.SemaNotCallable, "symbol %d is not a function", fnID)
	}
	if fn.Return.Type() != types.Void {
		for _, stmt := range b.Members(body) {
			ex := b.Expr(stmt)
			if ex == nil || ex.Op != ast.OpRet || !ex.Right.IsValid() {
				continue
			}
			if fn.Return.Equal(b.TypeOf(stmt)) {
				continue
			}
			value := ex.Right
			cast, err := b.NewCast(fn.Return, value, b.SpanOf(value))
			if err != nil {
				return err
			}
			if err := b.SetRight(stmt, cast); err != nil {
				return err
			}
		}
	}
	fn.Body = body
	return nil
}

// AddSymbols replaces the nested table with scope. A scope without a
// parent takes the old table's parent so lookups from the body still walk
// outward. Laid-out tables on either side are refused.
func (t *Table) AddSymbols(fnID SymbolID, scope ScopeID) error {
	fn := t.Function(fnID)
	if fn == nil {
		return diag.Errorf(diag.SemaNotCallable, "symbol %d is not a function", fnID)
	}
	if err := t.checkMutable(scope, fn.Scope); err != nil {
		return err
	}
	if s := t.Scope(scope); !s.Parent.IsValid() {
		s.Parent = t.Scope(fn.Scope).Parent
	}
	fn.Scope = scope
	return nil
}

// StringConstant interns s in the function's private string table and
// returns its symbol. Strings are NFC-normalized before lookup.
func (t *Table) StringConstant(fnID SymbolID, s string) (SymbolID, error) {
	fn := t.Function(fnID)
	if fn == nil {
		return NoSymbolID, diag.Errorf(diag.SemaNotCallable, "symbol %d is not a function", fnID)
	}
	key := norm.NFC.String(s)
	if id, ok := t.Find(fn.Strings, key); ok {
		return id, nil
	}
	meta := types.ListOf(t.Types.Of(types.Char), len(key))
	return t.Insert(fn.Strings, NewSymbol(key, meta, SymbolString))
}

// VariadicIndex is the position of the parameter that takes the argument
// tail, or -1.
func (f *Function) VariadicIndex(b *ast.Builder) int {
	if !f.Variadic {
		return -1
	}
	return b.Len(f.Params) - 1
}
