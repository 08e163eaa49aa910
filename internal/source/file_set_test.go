package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.cal", []byte("(decl i32 a)\n(decl i32 b)\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 5})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 6}) {
		t.Fatalf("unexpected first line positions: %+v %+v", start, end)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 13, End: 14})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("expected 2:1, got %+v", start)
	}
	// the newline itself belongs to the line it ends
	start, _ = fs.Resolve(Span{File: id, Start: 12, End: 12})
	if start != (LineCol{Line: 1, Col: 13}) {
		t.Fatalf("expected 1:13, got %+v", start)
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.cal", []byte("first\nsecond\nthird"))
	f := fs.Get(id)
	for n, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := f.Line(n); got != want {
			t.Fatalf("line %d: expected %q, got %q", n, want, got)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.cal")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF(decl i32 a)\r\n(decl i8 b)\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "(decl i32 a)\n(decl i8 b)\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if _, ok := fs.Lookup(path); !ok {
		t.Fatal("expected lookup by path to succeed")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("unexpected cover %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cross-file cover must be a no-op, got %v", got)
	}
}

func TestZeroSpanHasNoFile(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cal", []byte("x"))
	if id == NoFileID {
		t.Fatal("first file must not take the sentinel id")
	}
	if fs.Get(Span{}.File) != nil {
		t.Fatal("zero span must not resolve to a file")
	}
	if fs.Len() != 1 {
		t.Fatalf("expected 1 file, got %d", fs.Len())
	}
}
