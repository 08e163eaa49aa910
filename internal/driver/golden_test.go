package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calvin/internal/consteval"
	"calvin/internal/driver/golden"
	"calvin/internal/source"
	"calvin/internal/symbols"
	"calvin/internal/testkit"
)

func TestGoldenCases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files found")
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		cases, err := golden.Extract(content)
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runCase(t, tc)
			})
		}
	}
}

func runCase(t *testing.T, tc golden.Case) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main", []byte(tc.Input))
	res := Compile(context.Background(), fs, id, Options{})

	for _, a := range tc.Assertions {
		switch a.Type {
		case golden.AssertError:
			checkError(t, res, a.Content)
			continue
		}
		if !res.OK() {
			t.Fatalf("unexpected diagnostic: %s", res.Bag.Items()[0].Message)
		}
		var got string
		switch a.Type {
		case golden.AssertLayout:
			if err := testkit.CheckLayoutInvariants(res.Table, res.Root, res.Layout); err != nil {
				t.Fatalf("layout invariants: %v", err)
			}
			got = layoutLines(res.Table, res.Root)
		case golden.AssertValue:
			got = valueLines(res)
		case golden.AssertData:
			got = res.Builder.Format(res.Data, 0, "")
		}
		if got != a.Content {
			t.Fatalf("%s mismatch (line %d)\ngot:\n%s\nwant:\n%s", a.Type, a.Line, got, a.Content)
		}
	}
}

func checkError(t *testing.T, res *Result, want string) {
	t.Helper()
	code, fragment, _ := strings.Cut(want, ":")
	items := res.Bag.Items()
	if len(items) == 0 {
		t.Fatalf("expected %s, compiled cleanly", code)
	}
	d := items[0]
	if d.Code.ID() != strings.TrimSpace(code) {
		t.Fatalf("expected %s, got %s: %s", code, d.Code.ID(), d.Message)
	}
	if fragment = strings.TrimSpace(fragment); !strings.Contains(d.Message, fragment) {
		t.Fatalf("message %q does not contain %q", d.Message, fragment)
	}
}

func layoutLines(t *symbols.Table, scope symbols.ScopeID) string {
	var lines []string
	var walk func(symbols.ScopeID)
	walk = func(id symbols.ScopeID) {
		s := t.Scope(id)
		for _, symID := range s.Symbols {
			sym := t.Symbol(symID)
			lines = append(lines, fmt.Sprintf("%s.%s %d %d", s.Owner, sym.Name, sym.Location, sym.Size))
			if sym.Func != nil {
				walk(sym.Func.Scope)
			}
		}
	}
	walk(scope)
	return strings.Join(lines, "\n")
}

func valueLines(res *Result) string {
	var lines []string
	for _, m := range res.Builder.Members(res.Data) {
		v, err := consteval.Eval(res.Builder, m)
		if err != nil {
			lines = append(lines, "-")
			continue
		}
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}
