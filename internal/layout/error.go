package layout

import (
	"fmt"

	"calvin/internal/diag"
)

// LayoutErrorKind enumerates layout failures.
type LayoutErrorKind uint8

const (
	// LayoutErrLengthConversion: a list's byte size does not fit a frame offset.
	LayoutErrLengthConversion LayoutErrorKind = iota + 1
	LayoutErrOverflow
	LayoutErrNoTable
)

// LayoutError represents an error during storage assignment.
type LayoutError struct {
	Kind   LayoutErrorKind
	Symbol string
	Type   string
	Err    error
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrLengthConversion:
		return fmt.Sprintf("list size of %s does not fit a frame offset: %v", e.Type, e.Err)
	case LayoutErrOverflow:
		return fmt.Sprintf("location of %s overflows the frame", e.Symbol)
	case LayoutErrNoTable:
		return "layout of a missing symbol table"
	default:
		return fmt.Sprintf("layout error kind=%d", e.Kind)
	}
}

func (e *LayoutError) Unwrap() error { return e.Err }

// Code maps the error onto the diagnostic taxonomy.
func (e *LayoutError) Code() diag.Code {
	if e.Kind == LayoutErrNoTable {
		return diag.LayoutNoTable
	}
	return diag.LayoutOverflow
}
