package diag

import (
	"fmt"
	"strings"

	"calvin/internal/source"
)

// Error is the error value returned by semantic operations. It carries a
// stable code so callers can branch with errors.Is against the sentinels
// below, and the names involved so messages stay informative.
type Error struct {
	Code    Code
	Message string
	Span    source.Span
	Names   []string
}

var (
	ErrDuplicateSymbol     = &Error{Code: SemaDuplicateSymbol}
	ErrUndefinedSymbol     = &Error{Code: SemaUndefinedSymbol}
	ErrTypeMismatch        = &Error{Code: SemaTypeMismatch}
	ErrInvalidOperandClass = &Error{Code: SemaInvalidOperandClass}
	ErrNotCallable         = &Error{Code: SemaNotCallable}
	ErrTableLaidOut        = &Error{Code: SemaTableLaidOut}
	ErrUnexpectedForm      = &Error{Code: SynUnexpectedForm}
	ErrBadLiteral          = &Error{Code: SynBadLiteral}
	ErrUnclosedParen       = &Error{Code: SynUnclosedParen}
	ErrUnclosedString      = &Error{Code: SynUnclosedString}
	ErrUnknownOp           = &Error{Code: SynUnknownOp}
	ErrLoadFile            = &Error{Code: IOLoadFileError}
)

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At attaches a span.
func (e *Error) At(sp source.Span) *Error {
	e.Span = sp
	return e
}

// With records the names (symbols, types) the error is about.
func (e *Error) With(names ...string) *Error {
	e.Names = append(e.Names, names...)
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Code.ID())
	sb.WriteString(": ")
	if e.Message != "" {
		sb.WriteString(e.Message)
	} else {
		sb.WriteString(e.Code.Title())
	}
	if len(e.Names) > 0 && e.Message == "" {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(e.Names, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
