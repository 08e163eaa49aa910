package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"calvin/internal/diag"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[build]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %q %v %v", dir, ok, err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[build]
comment = true
sources = ["src", "/abs/x.cal"]
`)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Build.Target != "x86_64-linux-gnu" {
		t.Errorf("target = %q", m.Build.Target)
	}
	if m.Build.Output != filepath.Join(dir, DefaultOutput) {
		t.Errorf("output = %q", m.Build.Output)
	}
	if !m.Build.Comment {
		t.Error("comment not decoded")
	}
	if m.Build.Sources[0] != filepath.Join(dir, "src") || m.Build.Sources[1] != "/abs/x.cal" {
		t.Errorf("sources = %v", m.Build.Sources)
	}
	if m.Trace.Level != "off" {
		t.Errorf("trace level = %q", m.Trace.Level)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
		want *diag.Error
	}{
		{"syntax", "[build\n", diag.Errorf(diag.ProjBadConfig, "")},
		{"unknown key", "[build]\nfoo = 1\n", diag.Errorf(diag.ProjBadConfig, "")},
		{"target", "[build]\ntarget = \"pdp11\"\n", diag.Errorf(diag.ProjBadTarget, "")},
		{"level", "[trace]\nlevel = \"loud\"\n", diag.Errorf(diag.ProjBadConfig, "")},
		{"jobs", "[build]\njobs = -2\n", diag.Errorf(diag.ProjBadConfig, "")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.body)
			_, err := Load(path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load error = %v, want code %s", err, tc.want.Code.ID())
			}
		})
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// tmp может лежать внутри проекта с calvin.toml; тогда тест ничего не доказывает
	if ok {
		t.Skip("a calvin.toml exists above the temp dir")
	}
	if m.Build.Output != DefaultOutput {
		t.Errorf("output = %q", m.Build.Output)
	}
}
