// Package script reads reduction scripts: S-expressions describing, form
// by form, the bottom-up reductions an upstream parser would perform.
package script

import (
	"fmt"
	"strings"

	"calvin/internal/source"
)

// Kind is the kind of a Datum.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindInt
	KindReal
	KindString
	KindChar
	KindEllipsis
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindEllipsis:
		return "ellipsis"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Datum is one parsed form. Atoms keep their source text in Text (strings
// and chars without quotes); lists keep their members in Items.
type Datum struct {
	Kind  Kind
	Text  string
	Items []*Datum
	Span  source.Span
}

// IsAtom reports whether d is not a list.
func (d *Datum) IsAtom() bool { return d.Kind != KindList }

// Head returns the symbol in the first position of a list, or "".
func (d *Datum) Head() string {
	if d.Kind != KindList || len(d.Items) == 0 || d.Items[0].Kind != KindSymbol {
		return ""
	}
	return d.Items[0].Text
}

// Is reports whether d is the symbol s.
func (d *Datum) Is(s string) bool {
	return d.Kind == KindSymbol && d.Text == s
}

func (d *Datum) String() string {
	switch d.Kind {
	case KindString:
		return `"` + strings.ReplaceAll(d.Text, `"`, `\"`) + `"`
	case KindChar:
		return "'" + d.Text + "'"
	case KindEllipsis:
		return "..."
	case KindList:
		parts := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			parts = append(parts, it.String())
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return d.Text
}
