package layout

import "sort"

// Target names the assembly flavour the generator writes for. It does not
// change scalar widths; those are fixed by the type system.
type Target struct {
	Triple string // e.g. "x86_64-linux-gnu"
	Base   int    // frame offset of the first symbol, before its own size
}

var targets = map[string]Target{
	"x86_64-linux-gnu": {Triple: "x86_64-linux-gnu"},
	"i386-linux-gnu":   {Triple: "i386-linux-gnu"},
}

// DefaultTarget is used when no -t flag or manifest entry is given.
func DefaultTarget() Target {
	return targets["x86_64-linux-gnu"]
}

// LookupTarget finds a known target by triple.
func LookupTarget(triple string) (Target, bool) {
	t, ok := targets[triple]
	return t, ok
}

// Targets lists the known triples in sorted order.
func Targets() []string {
	out := make([]string, 0, len(targets))
	for k := range targets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
