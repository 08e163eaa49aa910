package project

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"calvin/internal/diag"
	"calvin/internal/layout"
	"calvin/internal/trace"
)

// DefaultOutput is the listing file written when nothing else is asked for.
const DefaultOutput = "cal.out.s"

// Manifest is the decoded calvin.toml. Zero values mean "not set".
type Manifest struct {
	Path  string `toml:"-"`
	Build Build  `toml:"build"`
	Trace Trace  `toml:"trace"`
}

type Build struct {
	Output  string   `toml:"output"`
	Target  string   `toml:"target"`
	Comment bool     `toml:"comment"`
	Sources []string `toml:"sources"`
	Jobs    int      `toml:"jobs"`
}

type Trace struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Defaults is the manifest used outside of a project.
func Defaults() Manifest {
	return Manifest{
		Build: Build{Output: DefaultOutput, Target: layout.DefaultTarget().Triple},
		Trace: Trace{Level: trace.LevelOff.String()},
	}
}

// Load parses a manifest and fills unset values from Defaults. Relative
// source and output paths are resolved against the manifest directory.
func Load(path string) (Manifest, error) {
	m := Defaults()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, diag.Errorf(diag.ProjBadConfig, "%s: failed to parse TOML: %v", path, err).With(path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Manifest{}, diag.Errorf(diag.ProjBadConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", ")).
			With(keys...)
	}
	m.Path = path

	if _, ok := layout.LookupTarget(m.Build.Target); !ok {
		return Manifest{}, diag.Errorf(diag.ProjBadTarget, "%s: unknown target %q (known: %s)",
			path, m.Build.Target, strings.Join(layout.Targets(), ", ")).With(m.Build.Target)
	}
	if _, err := trace.ParseLevel(m.Trace.Level); err != nil {
		return Manifest{}, diag.Errorf(diag.ProjBadConfig, "%s: %v", path, err).With(m.Trace.Level)
	}
	if m.Build.Jobs < 0 {
		return Manifest{}, diag.Errorf(diag.ProjBadConfig, "%s: jobs must not be negative", path)
	}

	dir := filepath.Dir(path)
	for i, src := range m.Build.Sources {
		if !filepath.IsAbs(src) {
			m.Build.Sources[i] = filepath.Join(dir, src)
		}
	}
	if m.Build.Output != "" && !filepath.IsAbs(m.Build.Output) {
		m.Build.Output = filepath.Join(dir, m.Build.Output)
	}
	return m, nil
}

// Discover finds and loads the manifest above startDir. Without one it
// returns Defaults and ok == false.
func Discover(startDir string) (m Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return Defaults(), false, err
	}
	m, err = Load(path)
	return m, err == nil, err
}
