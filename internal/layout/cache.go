package layout

import "calvin/internal/types"

// cache remembers sizes by canonical spelling, which includes the list
// element count.
type cache struct {
	bySpelling map[string]int
}

func newCache() *cache {
	return &cache{bySpelling: make(map[string]int, 32)}
}

func (c *cache) get(m *types.Meta) (int, bool) {
	if c == nil {
		return 0, false
	}
	n, ok := c.bySpelling[m.String()]
	return n, ok
}

func (c *cache) put(m *types.Meta, size int) {
	if c == nil {
		return
	}
	c.bySpelling[m.String()] = size
}
