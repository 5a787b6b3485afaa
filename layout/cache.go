package layout

import "github.com/rezi-tui/rezi/vnode"

// cacheKey is the (maxW, maxH, axis) triple a measurement is keyed on.
type cacheKey struct {
	maxW, maxH int32
	axis       Axis
}

// Cache memoizes measure() results keyed by VNode object identity, then
// by constraint triple. A new VNode value (even one that is
// field-for-field equal to a previous one) is always a cache miss: the
// key is the pointer itself, not its contents.
type Cache struct {
	entries map[*vnode.Node]map[cacheKey]Size
}

// NewCache returns an empty measurement cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[*vnode.Node]map[cacheKey]Size)}
}

func (c *Cache) get(n *vnode.Node, key cacheKey) (Size, bool) {
	byKey, ok := c.entries[n]
	if !ok {
		return Size{}, false
	}
	sz, ok := byKey[key]
	return sz, ok
}

func (c *Cache) put(n *vnode.Node, key cacheKey, sz Size) {
	byKey, ok := c.entries[n]
	if !ok {
		byKey = make(map[cacheKey]Size)
		c.entries[n] = byKey
	}
	byKey[key] = sz
}
