package ast

type Op uint8

const (
	// arithmetic
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	// bitwise
	OpBNot
	OpBAnd
	OpBOr
	OpBXor
	// shift
	OpLSL
	OpLSR
	OpASR
	// assign
	OpEqu
	// boolean
	OpLNot
	OpLAnd
	OpLOr
	// comparison
	OpEE
	OpNE
	OpGE
	OpLE
	OpLT
	OpGT
	OpCast
	OpRet
	OpCall
)

// OpClass groups operators by their typing rule.
type OpClass uint8

const (
	ClassArith OpClass = iota
	ClassBits
	ClassAssign
	ClassCompare
	ClassProc
)

var opSpelling = [...]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpBNot: "~",
	OpBAnd: "&",
	OpBOr:  "|",
	OpBXor: "^",
	OpLSL:  "<<",
	OpLSR:  ">>",
	OpASR:  ">>>",
	OpEqu:  "=",
	OpLNot: "not",
	OpLAnd: "and",
	OpLOr:  "or",
	OpEE:   "==",
	OpNE:   "!=",
	OpGE:   ">=",
	OpLE:   "<=",
	OpLT:   "<",
	OpGT:   ">",
	OpCast: "cast",
	OpRet:  "return",
	OpCall: "call",
}

func (op Op) String() string {
	if int(op) < len(opSpelling) {
		return opSpelling[op]
	}
	return "?"
}

// OpFromString is the inverse of Op.String.
func OpFromString(s string) (Op, bool) {
	for i, sp := range opSpelling {
		if sp == s {
			return Op(i), true // #nosec G115 -- table is tiny
		}
	}
	return 0, false
}

func (op Op) Class() OpClass {
	switch {
	case op <= OpMod:
		return ClassArith
	case op >= OpBNot && op <= OpASR:
		return ClassBits
	case op == OpEqu:
		return ClassAssign
	case op >= OpEE && op <= OpGT:
		return ClassCompare
	}
	return ClassProc
}

// IsUnary reports operators that take a single operand.
func (op Op) IsUnary() bool {
	return op == OpBNot || op == OpLNot || op == OpRet
}

func (op Op) binds() int {
	switch op {
	case OpMul, OpDiv, OpMod:
		return 2
	case OpAdd, OpSub:
		return 1
	}
	return 0
}
