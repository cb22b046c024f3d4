// Package strcache interns strings so that equal rule and dependency names
// share one backing copy. Nothing in the rule engine depends on interning
// for correctness; names are always compared by value.
package strcache

import "sync"

// Cache maps text to its canonical copy.
type Cache struct {
	mu      sync.Mutex
	strs    map[string]string
	lookups int
	bytes   int
}

// Stats summarizes cache usage for diagnostics.
type Stats struct {
	Strings int
	Bytes   int
	Lookups int
	Hits    int
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{strs: make(map[string]string)}
}

// Add returns the canonical copy of s, storing s if it was not seen before.
func (c *Cache) Add(s string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lookups++
	if canon, ok := c.strs[s]; ok {
		return canon
	}
	c.strs[s] = s
	c.bytes += len(s)
	return s
}

// Len returns the number of distinct strings held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.strs)
}

// Stats returns a snapshot of usage counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Strings: len(c.strs),
		Bytes:   c.bytes,
		Lookups: c.lookups,
		Hits:    c.lookups - len(c.strs),
	}
}
