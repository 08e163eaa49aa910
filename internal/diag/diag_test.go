package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"calvin/internal/source"
)

func TestErrorIsMatchesCode(t *testing.T) {
	err := Errorf(SemaTypeMismatch, "cannot cast %s to %s", "r64", "i32").With("r64", "i32")
	wrapped := fmt.Errorf("assign: %w", err)
	if !errors.Is(wrapped, ErrTypeMismatch) {
		t.Fatal("expected wrapped error to match ErrTypeMismatch")
	}
	if errors.Is(wrapped, ErrUndefinedSymbol) {
		t.Fatal("type mismatch must not match undefined symbol")
	}
	var de *Error
	if !errors.As(wrapped, &de) || len(de.Names) != 2 {
		t.Fatalf("expected names to survive wrapping, got %+v", de)
	}
	if !strings.HasPrefix(err.Error(), "SEM3003: cannot cast") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestErrorWithoutMessageUsesTitle(t *testing.T) {
	err := (&Error{Code: SemaUndefinedSymbol}).With("x")
	if got := err.Error(); got != "SEM3002: Undefined symbol (x)" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestReportErrAndBag(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cal", []byte("(decl i32 a)\n(decl i32 a)\n"))
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	dup := Errorf(SemaDuplicateSymbol, "symbol a already declared").At(source.Span{File: id, Start: 13, End: 25})
	ReportErr(r, source.Span{File: id}, dup)
	ReportErr(r, source.Span{File: id}, dup)
	ReportErr(r, source.Span{File: id, Start: 0, End: 1}, errors.New("boom"))

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	bag.Sort()
	got := FormatShort(bag.Items(), fs, false)
	want := "a.cal:1:1: ERROR E0000: boom\n" +
		"a.cal:2:1: ERROR SEM3001: symbol a already declared"
	if got != want {
		t.Fatalf("unexpected short output:\n%s\nwant:\n%s", got, want)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SynBadLiteral, source.Span{}, "x")) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(NewError(SynBadLiteral, source.Span{}, "y")) {
		t.Fatal("second add must hit the limit")
	}
	other := NewBag(2)
	other.Add(New(SevWarning, SynInfo, source.Span{}, "w"))
	bag.Merge(other)
	if bag.Len() != 2 {
		t.Fatalf("merge must grow the limit, got %d", bag.Len())
	}
}
