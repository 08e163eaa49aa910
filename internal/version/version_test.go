package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersionString(t *testing.T) {
	if got := String(); got != "Calvin Compiler v0.0.1" {
		t.Fatalf("unexpected version string %q", got)
	}
}

func TestColoredMatchesPlainWithoutColor(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	if got := Colored(); got != String() {
		t.Fatalf("expected %q, got %q", String(), got)
	}
}

func TestVersionCanBeOverridden(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if got := String(); got != "Calvin Compiler v1.2.3" {
		t.Fatalf("unexpected %q", got)
	}
}
