package dump

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"calvin/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Header renders a section title; plain when styled is false.
func Header(title string, styled bool) string {
	if !styled {
		return title
	}
	return headerStyle.Render(title)
}

// scalarTags lists every tag a declaration may name, in lattice order.
var scalarTags = []types.DataType{
	types.Bool, types.Char,
	types.U8, types.I8, types.U16, types.I16,
	types.U32, types.I32, types.R32, types.X32,
	types.U64, types.I64, types.R64, types.X64,
	types.Void,
}

// WriteTypes prints the builtin scalar types with their short form, width
// and class.
func WriteTypes(w io.Writer, styled bool) error {
	ew := &errWriter{w: w}
	head := fmt.Sprintf("%s %s %s %s", pad("TYPE", 6), pad("SHORT", 6), pad("BYTES", 6), "CLASS")
	fmt.Fprintln(ew, Header(head, styled))
	for _, t := range scalarTags {
		line := fmt.Sprintf("%s %s %s %s", pad(t.String(), 6), pad(t.Short(), 6),
			pad(fmt.Sprint(t.ByteSize()), 6), t.Class())
		fmt.Fprintln(ew, line)
	}
	note := "lists: <elem>[<count>], short form <elem>l, e.g. r64[4] -> r64l"
	if styled {
		note = dimStyle.Render(note)
	}
	fmt.Fprintln(ew, note)
	return ew.err
}
