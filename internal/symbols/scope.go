package symbols

// ScopeKind tags what kind of lexical unit a table belongs to.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeProgram
	ScopeFunction
	ScopeClass // reserved; classes are not compiled yet
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "Program"
	case ScopeFunction:
		return "Function"
	case ScopeClass:
		return "Class"
	default:
		return "Invalid"
	}
}

// Access is the visibility level of a table.
type Access uint8

const (
	AccessGlobal Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessGlobal:
		return "Global"
	case AccessPublic:
		return "Public"
	case AccessProtected:
		return "Protected"
	case AccessPrivate:
		return "Private"
	}
	return "Unknown"
}

// Boundary is where outward resolution stops: the walk does not leave a
// table whose kind or access matches.
type Boundary struct {
	Kind   ScopeKind
	Access Access
}

// DefaultBoundary stops at the program/global table.
var DefaultBoundary = Boundary{Kind: ScopeProgram, Access: AccessGlobal}

// Scope is one symbol table. Symbols keeps declaration order until Remove
// swaps entries. Parent is used for lookup only.
type Scope struct {
	Kind     ScopeKind
	Access   Access
	Parent   ScopeID
	Owner    string
	Symbols  []SymbolID
	Children []ScopeID
	LaidOut  bool
}
