package dump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"calvin/internal/ast"
	"calvin/internal/symbols"
)

const columnWidth = 10

// pad left-aligns s in a column of width cells; longer values are kept.
func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// WriteTable prints scope and, recursively, the tables of its functions.
// Every line starts with indent tabs and pre. b may be nil, in which case
// function parameter and body lists are left out.
func WriteTable(w io.Writer, t *symbols.Table, b *ast.Builder, scope symbols.ScopeID, indent int, pre string) {
	s := t.Scope(scope)
	lead := strings.Repeat("\t", indent) + pre
	if s == nil {
		fmt.Fprintf(w, "%s[No Table]\n", lead)
		return
	}
	fmt.Fprintf(w, "%sOwner: %s | Scope: %s %s", lead, s.Owner, s.Kind, s.Access)
	if len(s.Symbols) == 0 {
		fmt.Fprint(w, " | [No Symbols]\n")
		return
	}
	fmt.Fprintln(w)
	for _, id := range s.Symbols {
		writeSymbol(w, t, b, id, indent, pre)
	}
}

func writeSymbol(w io.Writer, t *symbols.Table, b *ast.Builder, id symbols.SymbolID, indent int, pre string) {
	sym := t.Symbol(id)
	lead := strings.Repeat("\t", indent) + pre
	fmt.Fprintf(w, "%sNAME: %s TYPE: %s LOC: %s SIZE: %d META: %s\n",
		lead, pad(sym.Name, columnWidth), pad(typeName(sym), columnWidth),
		pad(strconv.Itoa(sym.Location), 5), sym.Size, sym.Meta)

	fn := sym.Func
	if fn == nil {
		return
	}
	WriteTable(w, t, b, fn.Scope, indent+1, pre)
	fmt.Fprintln(w)
	if b != nil {
		for _, list := range [...]ast.NodeID{fn.Params, fn.Body, fn.Epilogue} {
			fmt.Fprintln(w, b.Format(list, indent+1, pre))
			fmt.Fprintln(w)
		}
	}
	WriteTable(w, t, b, fn.Strings, indent+1, pre)
	fmt.Fprintln(w)
}

func typeName(sym *symbols.Symbol) string {
	if sym.TypeName != "" || sym.Meta == nil {
		return sym.TypeName
	}
	return sym.Meta.String()
}

// Generate writes the default listing: the root table and the data list,
// both as assembly comments.
func Generate(w io.Writer, u Unit) error {
	ew := &errWriter{w: w}
	fmt.Fprint(ew, ";Default Generator:\n\n")
	fmt.Fprintln(ew, ";Global Symbols:")
	WriteTable(ew, u.Table, u.Builder, u.Root, 0, ";")
	fmt.Fprint(ew, "\n\n")
	fmt.Fprintln(ew, ";Data:")
	fmt.Fprintln(ew, u.Builder.Format(u.Data, 0, ";"))
	return ew.err
}

// errWriter keeps the first write error so the listing code can ignore
// errors line by line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
