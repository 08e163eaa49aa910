// Package golden extracts test cases from Markdown files. A case starts
// at a "Test: <name>" heading and holds one calvin input fence followed
// by assertion fences.
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the fence language of the script under test.
const InputFence = "calvin"

// AssertionType is the fence language of an assertion.
type AssertionType string

const (
	// AssertLayout lists "owner.name location size" per symbol.
	AssertLayout AssertionType = "layout"
	// AssertError holds the expected diagnostic code and, optionally, a
	// message fragment after a colon.
	AssertError AssertionType = "error"
	// AssertValue lists the folded value of every constant data statement.
	AssertValue AssertionType = "value"
	// AssertData is the data list as the listing prints it.
	AssertData AssertionType = "data"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

type Case struct {
	Name       string
	Input      string
	Line       int
	Assertions []Assertion
}

func isAssertion(lang string) bool {
	switch AssertionType(lang) {
	case AssertLayout, AssertError, AssertValue, AssertData:
		return true
	}
	return false
}

// Extract parses markdown and returns its cases in document order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases []Case
		cur   *Case
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Input == "" {
			return fmt.Errorf("line %d: test %q has no %s fence", cur.Line, cur.Name, InputFence)
		}
		if len(cur.Assertions) == 0 {
			return fmt.Errorf("line %d: test %q has no assertions", cur.Line, cur.Name)
		}
		cases = append(cases, *cur)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			title := nodeText(n, markdown)
			name, ok := strings.CutPrefix(title, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{Name: name, Line: lineOf(n, markdown)}
		case *ast.FencedCodeBlock:
			lang := string(n.Language(markdown))
			line := lineOf(n, markdown)
			content := strings.TrimRight(blockText(n, markdown), "\n")
			switch {
			case lang == "":
				return ast.WalkContinue, nil
			case cur == nil:
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
			case lang == InputFence:
				if cur.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second input fence in test %q", line, cur.Name)
				}
				cur.Input = content
			case isAssertion(lang):
				cur.Assertions = append(cur.Assertions, Assertion{Type: AssertionType(lang), Content: content, Line: line})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, cur.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func nodeText(node ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(block *ast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// lineOf is the 1-based line of the node's first content line.
func lineOf(node ast.Node, src []byte) int {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}
