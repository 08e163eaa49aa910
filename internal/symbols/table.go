package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"calvin/internal/diag"
	"calvin/internal/types"
)

// Hints provide optional capacity suggestions for the arenas.
type Hints struct{ Scopes, Symbols uint }

// Table owns every symbol table of one compilation together with the
// symbols they hold.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Types   *types.Interner

	// OnInsert, when set, observes every successful insertion.
	OnInsert func(scope ScopeID, sym SymbolID)
}

// NewTable builds a fresh table. If in is nil a fresh interner is used.
func NewTable(h Hints, in *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if in == nil {
		in = types.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Types:   in,
	}
}

// Program creates a root PROGRAM/GLOBAL table.
func (t *Table) Program(owner string) ScopeID {
	return t.Scopes.New(ScopeProgram, AccessGlobal, NoScopeID, owner)
}

// NewScope creates a table nested in parent.
func (t *Table) NewScope(kind ScopeKind, access Access, parent ScopeID, owner string) ScopeID {
	return t.Scopes.New(kind, access, parent, owner)
}

// ClassTable creates a CLASS table. Classes are not compiled; the table
// exists so resolution boundaries can be exercised.
func (t *Table) ClassTable(parent ScopeID, owner string, private bool) ScopeID {
	access := AccessPublic
	if private {
		access = AccessPrivate
	}
	return t.Scopes.New(ScopeClass, access, parent, owner)
}

func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// position returns the index of name in the direct table, without
// touching lookup counters.
func (t *Table) position(scope ScopeID, name string) int {
	s := t.Scope(scope)
	if s == nil {
		return -1
	}
	for i, id := range s.Symbols {
		if t.Symbols.Get(id).Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether name is declared directly in scope.
func (t *Table) Has(scope ScopeID, name string) bool {
	return t.position(scope, name) >= 0
}

// Insert adds sym to scope. Shadowing a name from a parent table is fine;
// repeating a name in the same table is not.
func (t *Table) Insert(scope ScopeID, sym Symbol) (SymbolID, error) {
	if t.Scope(scope) == nil {
		return NoSymbolID, fmt.Errorf("insert %q: invalid scope %d", sym.Name, scope)
	}
	if t.Has(scope, sym.Name) {
		return NoSymbolID, diag.Errorf(diag.SemaDuplicateSymbol,
			"symbol %s already declared in %s", sym.Name, t.Scope(scope).Owner).
			With(sym.Name).At(sym.Span)
	}
	sym.Scope = scope
	id := t.Symbols.New(sym)
	s := t.Scope(scope)
	s.Symbols = append(s.Symbols, id)
	if t.OnInsert != nil {
		t.OnInsert(scope, id)
	}
	return id, nil
}

// Create declares name with a type given by its spelling.
func (t *Table) Create(scope ScopeID, name, typeName string) (SymbolID, error) {
	return t.Insert(scope, NewSymbol(name, t.Types.Intern(typeName), SymbolVar))
}

// Index returns the position of name in the direct table or -1. A hit
// counts as a lookup.
func (t *Table) Index(scope ScopeID, name string) int {
	i := t.position(scope, name)
	if i >= 0 {
		t.Symbols.Get(t.Scope(scope).Symbols[i]).Lookups++
	}
	return i
}

// Find looks name up in the direct table only.
func (t *Table) Find(scope ScopeID, name string) (SymbolID, bool) {
	i := t.Index(scope, name)
	if i < 0 {
		return NoSymbolID, false
	}
	return t.Scope(scope).Symbols[i], true
}

// At returns the i-th symbol of scope.
func (t *Table) At(scope ScopeID, i int) SymbolID {
	s := t.Scope(scope)
	if s == nil || i < 0 || i >= len(s.Symbols) {
		return NoSymbolID
	}
	return s.Symbols[i]
}

func (t *Table) Last(scope ScopeID) SymbolID {
	return t.At(scope, t.Len(scope)-1)
}

func (t *Table) Len(scope ScopeID) int {
	if s := t.Scope(scope); s != nil {
		return len(s.Symbols)
	}
	return 0
}

// Space sums the sizes of the direct symbols.
func (t *Table) Space(scope ScopeID) int {
	total := 0
	if s := t.Scope(scope); s != nil {
		for _, id := range s.Symbols {
			total += t.Symbols.Get(id).Size
		}
	}
	return total
}

// QueryPrefix returns the positions of every direct symbol whose name
// starts with prefix.
func (t *Table) QueryPrefix(scope ScopeID, prefix string) []int {
	s := t.Scope(scope)
	if s == nil {
		return nil
	}
	var out []int
	for i, id := range s.Symbols {
		if strings.HasPrefix(t.Symbols.Get(id).Name, prefix) {
			out = append(out, i)
		}
	}
	return out
}

// Remove deletes name from scope by swapping the last entry into its slot.
func (t *Table) Remove(scope ScopeID, name string) bool {
	i := t.position(scope, name)
	if i < 0 {
		return false
	}
	s := t.Scope(scope)
	last := len(s.Symbols) - 1
	s.Symbols[i] = s.Symbols[last]
	s.Symbols = s.Symbols[:last]
	return true
}

func (t *Table) checkMutable(dst, src ScopeID) error {
	ds, ss := t.Scope(dst), t.Scope(src)
	if ds == nil || ss == nil {
		return fmt.Errorf("invalid scope pair %d/%d", dst, src)
	}
	if ds.LaidOut || ss.LaidOut {
		return diag.Errorf(diag.SemaTableLaidOut,
			"table %s or %s is already laid out", ds.Owner, ss.Owner).
			With(ds.Owner, ss.Owner)
	}
	for _, id := range ss.Symbols {
		if name := t.Symbols.Get(id).Name; t.Has(dst, name) {
			return diag.Errorf(diag.SemaDuplicateSymbol,
				"symbol %s already declared in %s", name, ds.Owner).With(name)
		}
	}
	return nil
}

// Merge moves every symbol of src into dst and empties src. Nothing moves
// if either side is laid out or a name would repeat.
func (t *Table) Merge(dst, src ScopeID) error {
	if err := t.checkMutable(dst, src); err != nil {
		return err
	}
	moved := t.Scope(src).Symbols
	t.Scope(src).Symbols = nil
	for _, id := range moved {
		t.Symbols.Get(id).Scope = dst
		d := t.Scope(dst)
		d.Symbols = append(d.Symbols, id)
		if t.OnInsert != nil {
			t.OnInsert(dst, id)
		}
	}
	return nil
}

// Copy inserts a duplicate of every symbol of src into dst; src is left
// untouched. A copied function gets its own payload whose Symbol is the
// copy; its nested tables, parameters and body are shared with the
// original.
func (t *Table) Copy(dst, src ScopeID) error {
	if err := t.checkMutable(dst, src); err != nil {
		return err
	}
	ids := append([]SymbolID(nil), t.Scope(src).Symbols...)
	for _, id := range ids {
		sym := *t.Symbols.Get(id)
		sym.Lookups = 0
		if sym.Func != nil {
			// свой payload; вложенные таблицы и списки общие с оригиналом
			fn := *sym.Func
			sym.Func = &fn
		}
		nid, err := t.Insert(dst, sym)
		if err != nil {
			return err
		}
		if sym.Func != nil {
			sym.Func.Symbol = nid
		}
	}
	return nil
}

// Resolve walks outward from start and returns the first table that
// declares name directly. The walk leaves a table only while its kind and
// its access both differ from the boundary.
func (t *Table) Resolve(start ScopeID, name string, stop Boundary) (ScopeID, error) {
	cur := start
	for {
		s := t.Scope(cur)
		if s == nil {
			break
		}
		if t.Has(cur, name) {
			return cur, nil
		}
		if s.Kind == stop.Kind || s.Access == stop.Access || !s.Parent.IsValid() {
			break
		}
		cur = s.Parent
	}
	return NoScopeID, diag.Errorf(diag.SemaUndefinedSymbol, "symbol %s is not defined", name).With(name)
}

// Lookup resolves name outward and returns the symbol, counting the hit.
func (t *Table) Lookup(start ScopeID, name string, stop Boundary) (SymbolID, error) {
	scope, err := t.Resolve(start, name, stop)
	if err != nil {
		return NoSymbolID, err
	}
	id, _ := t.Find(scope, name)
	return id, nil
}

// Top follows parent links to the root table.
func (t *Table) Top(start ScopeID) ScopeID {
	cur := start
	for {
		s := t.Scope(cur)
		if s == nil || !s.Parent.IsValid() {
			return cur
		}
		cur = s.Parent
	}
}

// Validate checks that every table entry points back to its table and
// every parent link is valid.
func (t *Table) Validate() error {
	for i := 1; i <= t.Scopes.Len(); i++ {
		id := ScopeID(i) // #nosec G115 -- bounded by arena size
		s := t.Scope(id)
		if s.Parent.IsValid() && t.Scope(s.Parent) == nil {
			return fmt.Errorf("scope %d: dangling parent %d", id, s.Parent)
		}
		for _, sym := range s.Symbols {
			rec := t.Symbols.Get(sym)
			if rec == nil {
				return fmt.Errorf("scope %d: dangling symbol %d", id, sym)
			}
			if rec.Scope != id {
				return fmt.Errorf("scope %d: symbol %s claims scope %d", id, rec.Name, rec.Scope)
			}
		}
	}
	return nil
}
