// Package cache memoizes the one-time cost of scanning an event's Metadata
// extension bytes, keyed by their xxHash64. Repeat events of the same
// tracepoint and schema version carry byte-identical metadata, so the
// layout derived on the first occurrence can be reused on every later one
// without re-deriving it.
//
// A cache hit never changes what StartEvent reports: Layout only summarizes
// facts StartEvent would otherwise recompute by rescanning the same bytes,
// so hit and miss paths yield byte-identical enumeration.
package cache

import (
	"sync"

	"github.com/eventheader-go/eventheader/internal/hash"
)

// Layout is the precomputed summary of one Metadata extension's top level:
// the event name span and the offset its field descriptors begin at. Both
// are relative to the start of the Metadata extension payload, so they
// apply unchanged to any event byte slice carrying the identical extension
// bytes at whatever offset they happen to start at.
type Layout struct {
	NameLen     int
	FieldsStart int
}

// Layouts is a bounded memo of metadata byte hash to Layout, guarded by a
// mutex so it is safe for concurrent use by multiple goroutines sharing one
// Enumerator pool (the intended use via decoder.WithLayoutCache).
//
// The zero value is not ready for use; call New.
type Layouts struct {
	mu      sync.RWMutex
	entries map[uint64]Layout
	limit   int
}

// defaultLimit bounds unbounded growth from a caller that mixes in
// maliciously varied metadata bytes on every event, each hashing to a
// distinct key.
const defaultLimit = 4096

// New returns an empty Layouts with the given entry limit, or defaultLimit
// if limit <= 0.
func New(limit int) *Layouts {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Layouts{entries: make(map[uint64]Layout), limit: limit}
}

// Hash computes the cache key for a Metadata extension's raw bytes.
func Hash(metadata []byte) uint64 {
	return hash.Bytes(metadata)
}

// Lookup returns the Layout cached under key, if present.
func (c *Layouts) Lookup(key uint64) (Layout, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.entries[key]
	return l, ok
}

// Store records layout under key, evicting arbitrarily (via Go's map
// iteration order, which is unspecified but adequately random in practice)
// down to half of limit first if the cache is full. This is a simple
// amortized bound, not an LRU: precision here isn't worth the bookkeeping
// since a mis-evicted entry only costs one re-scan, never a wrong answer.
func (c *Layouts) Store(key uint64, layout Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.limit {
		evict := c.limit / 2
		for k := range c.entries {
			if evict <= 0 {
				break
			}
			delete(c.entries, k)
			evict--
		}
	}
	c.entries[key] = layout
}

// Len reports the number of cached layouts.
func (c *Layouts) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
