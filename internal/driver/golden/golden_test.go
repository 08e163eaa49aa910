package golden

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	md := strings.Join([]string{
		"# Layout",
		"",
		"## Test: two ints",
		"",
		"```calvin",
		"(decl i32 a)",
		"(decl i32 b)",
		"```",
		"",
		"```layout",
		"main.a 4 4",
		"main.b 8 4",
		"```",
		"",
		"## Test: bad cast",
		"```calvin",
		"(+ 1 \"ab\")",
		"```",
		"```error",
		"SEM3003",
		"```",
		"",
	}, "\n")

	cases, err := Extract([]byte(md))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	first := cases[0]
	if first.Name != "two ints" || first.Input != "(decl i32 a)\n(decl i32 b)" {
		t.Fatalf("unexpected first case %+v", first)
	}
	if len(first.Assertions) != 1 || first.Assertions[0].Type != AssertLayout {
		t.Fatalf("unexpected assertions %+v", first.Assertions)
	}
	if first.Assertions[0].Content != "main.a 4 4\nmain.b 8 4" {
		t.Fatalf("unexpected layout content %q", first.Assertions[0].Content)
	}
	if cases[1].Assertions[0].Type != AssertError || cases[1].Assertions[0].Content != "SEM3003" {
		t.Fatalf("unexpected second case %+v", cases[1])
	}
}

func TestExtractRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"outside":   "```calvin\n(decl i32 a)\n```\n",
		"no input":  "# Test: x\n```layout\nmain.a 4 4\n```\n",
		"no assert": "# Test: x\n```calvin\n(decl i32 a)\n```\n",
		"unknown":   "# Test: x\n```calvin\n1\n```\n```wat\n1\n```\n",
	}
	for name, md := range tests {
		if _, err := Extract([]byte(md)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}
