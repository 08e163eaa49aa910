package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"calvin/internal/ast"
	"calvin/internal/consteval"
	"calvin/internal/symbols"
)

// Document is the structured form of a unit.
type Document struct {
	Target  string      `json:"target,omitempty" yaml:"target,omitempty"`
	Globals Table       `json:"globals" yaml:"globals"`
	Data    []Statement `json:"data" yaml:"data"`
}

type Table struct {
	Owner   string   `json:"owner" yaml:"owner"`
	Kind    string   `json:"kind" yaml:"kind"`
	Access  string   `json:"access" yaml:"access"`
	Size    int      `json:"size" yaml:"size"`
	Symbols []Symbol `json:"symbols" yaml:"symbols"`
}

type Symbol struct {
	Name     string    `json:"name" yaml:"name"`
	Type     string    `json:"type" yaml:"type"`
	Kind     string    `json:"kind" yaml:"kind"`
	Location int       `json:"location" yaml:"location"`
	Size     int       `json:"size" yaml:"size"`
	Lookups  int       `json:"lookups" yaml:"lookups"`
	Function *Function `json:"function,omitempty" yaml:"function,omitempty"`
}

type Function struct {
	Name     string      `json:"name" yaml:"name"`
	Return   string      `json:"return" yaml:"return"`
	Variadic bool        `json:"variadic,omitempty" yaml:"variadic,omitempty"`
	Locals   Table       `json:"locals" yaml:"locals"`
	Strings  Table       `json:"strings" yaml:"strings"`
	Body     []Statement `json:"body" yaml:"body"`
}

// Statement is one data or body entry. Value is set when the statement
// folds to a constant.
type Statement struct {
	Type  string `json:"type" yaml:"type"`
	Text  string `json:"text" yaml:"text"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Build converts u into its structured form.
func Build(u Unit) Document {
	return Document{
		Target:  u.Target,
		Globals: buildTable(u.Table, u.Builder, u.Root),
		Data:    buildStatements(u.Builder, u.Data),
	}
}

func buildTable(t *symbols.Table, b *ast.Builder, scope symbols.ScopeID) Table {
	s := t.Scope(scope)
	if s == nil {
		return Table{}
	}
	out := Table{
		Owner:   s.Owner,
		Kind:    s.Kind.String(),
		Access:  s.Access.String(),
		Size:    t.Space(scope),
		Symbols: make([]Symbol, 0, len(s.Symbols)),
	}
	for _, id := range s.Symbols {
		sym := t.Symbol(id)
		entry := Symbol{
			Name:     sym.Name,
			Type:     typeName(sym),
			Kind:     sym.Kind.String(),
			Location: sym.Location,
			Size:     sym.Size,
			Lookups:  sym.Lookups,
		}
		if fn := sym.Func; fn != nil {
			entry.Function = &Function{
				Name:     fn.Name,
				Return:   fn.Return.String(),
				Variadic: fn.Variadic,
				Locals:   buildTable(t, b, fn.Scope),
				Strings:  buildTable(t, b, fn.Strings),
				Body:     buildStatements(b, fn.Body),
			}
		}
		out.Symbols = append(out.Symbols, entry)
	}
	return out
}

func buildStatements(b *ast.Builder, list ast.NodeID) []Statement {
	members := b.Members(list)
	out := make([]Statement, 0, len(members))
	for _, m := range members {
		st := Statement{
			Type: b.TypeOf(m).String(),
			Text: strings.TrimSpace(b.Format(m, 0, "")),
		}
		if v, err := consteval.Eval(b, m); err == nil {
			st.Value = v.String()
		}
		out = append(out, st)
	}
	return out
}

// Format names an output format of the dump command.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q (want text, json or yaml)", s)
}

// Write renders u in format f. The text format is the generator listing
// without the comment prefix.
func Write(w io.Writer, u Unit, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Build(u))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Build(u)); err != nil {
			return err
		}
		return enc.Close()
	}
	ew := &errWriter{w: w}
	WriteTable(ew, u.Table, u.Builder, u.Root, 0, "")
	fmt.Fprintln(ew)
	fmt.Fprintln(ew, u.Builder.Format(u.Data, 0, ""))
	return ew.err
}
