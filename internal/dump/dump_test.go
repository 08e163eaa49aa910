package dump_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"calvin/internal/driver"
	"calvin/internal/dump"
	"calvin/internal/source"
)

func compile(t *testing.T, src string) dump.Unit {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main", []byte(src))
	res := driver.Compile(context.Background(), fs, id, driver.Options{})
	if !res.OK() {
		t.Fatalf("compile failed: %s", res.Bag.Items()[0].Message)
	}
	return dump.Unit{Builder: res.Builder, Table: res.Table, Root: res.Root, Data: res.Data, Target: "x86_64-linux-gnu"}
}

func TestGenerateListing(t *testing.T) {
	u := compile(t, "(decl i32 a)\n(decl i32 b)\n(+ 1 2)\n")
	var buf bytes.Buffer
	if err := dump.Generate(&buf, u); err != nil {
		t.Fatal(err)
	}
	want := ";Default Generator:\n\n" +
		";Global Symbols:\n" +
		";Owner: main | Scope: Program Global\n" +
		";NAME: a          TYPE: i32        LOC: 4     SIZE: 4 META: i32\n" +
		";NAME: b          TYPE: i32        LOC: 8     SIZE: 4 META: i32\n" +
		"\n\n" +
		";Data:\n" +
		";i32[0] : 1[\n" +
		"\t;(i32 +\n" +
		"\t\t;i32 1\n" +
		"\t\t;i32 2\n" +
		"\t;)\n" +
		";]\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected listing:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	u := compile(t, "")
	var buf bytes.Buffer
	dump.WriteTable(&buf, u.Table, u.Builder, u.Root, 1, ";")
	if got := buf.String(); got != "\t;Owner: main | Scope: Program Global | [No Symbols]\n" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestFunctionListing(t *testing.T) {
	u := compile(t, `(fn greet void ((decl char c)) "hi")`)
	var buf bytes.Buffer
	dump.WriteTable(&buf, u.Table, u.Builder, u.Root, 0, "")
	out := buf.String()
	for _, want := range []string{
		"NAME: greet.c    TYPE: void",
		"\tOwner: greet.c | Scope: Function Private",
		"\tNAME: c          TYPE: char       LOC: 1     SIZE: 1 META: char",
		"\tOwner: greet.c | Scope: Program Private",
		"\tNAME: hi         TYPE: char[2]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestStructuredFormats(t *testing.T) {
	u := compile(t, "(decl r64 x)\n(* 2 (+ 3 4))\n(= x 1)\n")

	var js bytes.Buffer
	if err := dump.Write(&js, u, dump.FormatJSON); err != nil {
		t.Fatal(err)
	}
	var doc dump.Document
	if err := json.Unmarshal(js.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(doc.Globals.Symbols) != 1 || doc.Globals.Symbols[0].Location != 8 {
		t.Fatalf("unexpected globals %+v", doc.Globals)
	}
	if len(doc.Data) != 2 || doc.Data[0].Value != "10" || doc.Data[1].Value != "" {
		t.Fatalf("unexpected data %+v", doc.Data)
	}

	var ys bytes.Buffer
	if err := dump.Write(&ys, u, dump.FormatYAML); err != nil {
		t.Fatal(err)
	}
	var back dump.Document
	if err := yaml.Unmarshal(ys.Bytes(), &back); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if back.Globals.Owner != "main" || back.Data[1].Type != "r64" {
		t.Fatalf("unexpected yaml document %+v", back)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := dump.ParseFormat("YAML"); err != nil || f != dump.FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, err)
	}
	if _, err := dump.ParseFormat("xml"); err == nil {
		t.Fatal("expected an error for xml")
	}
}

func TestWriteTypes(t *testing.T) {
	var buf bytes.Buffer
	if err := dump.WriteTypes(&buf, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "i32    i32    4      integral") {
		t.Fatalf("unexpected type table:\n%s", buf.String())
	}
}
