package builder

import (
	"sync"

	"github.com/coregx/dfalex/automaton"
)

// BuilderCache stores encoded packed-DFA payloads keyed by the string
// CacheKey computes. Payloads are the byte form a caller's EncodeTag
// codec produces via automaton.Encode, round-tripped through
// automaton.Decode on a hit.
type BuilderCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte)
}

// MemoryCache is a bounded, thread-safe, in-process BuilderCache: an
// RWMutex-guarded map with oldest-first eviction. Entries are whole
// compiled DFAs, so LRU bookkeeping buys little over insertion order.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string][]byte
	order     []string
	maxBytes  int
	sizeBytes int
}

// NewMemoryCache returns a MemoryCache that evicts its oldest entries
// (insertion order) once the total payload size would exceed maxBytes. A
// non-positive maxBytes means unbounded.
func NewMemoryCache(maxBytes int) *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte), maxBytes: maxBytes}
}

// Get returns the cached payload for key, if present.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores payload under key, evicting the oldest entries first if the
// cache's maxBytes budget would otherwise be exceeded.
func (c *MemoryCache) Put(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.sizeBytes -= len(old)
	} else {
		c.order = append(c.order, key)
	}
	c.entries[key] = payload
	c.sizeBytes += len(payload)

	for c.maxBytes > 0 && c.sizeBytes > c.maxBytes && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.sizeBytes -= len(c.entries[oldest])
		delete(c.entries, oldest)
	}
}

// GetOrBuild returns the decoded PackedDfa for key from cache, or calls
// build, caches its encoded form, and returns it on a miss.
func GetOrBuild[Tag comparable](
	cache BuilderCache,
	key string,
	encodeTag automaton.EncodeTag[Tag],
	decodeTag automaton.DecodeTag[Tag],
	build func() (*automaton.PackedDfa[Tag], error),
) (*automaton.PackedDfa[Tag], error) {
	if cache != nil {
		if payload, ok := cache.Get(key); ok {
			if dfa, err := automaton.Decode(payload, decodeTag); err == nil {
				return dfa, nil
			}
			// Corrupt cached payload: fall through and rebuild.
		}
	}

	dfa, err := build()
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Put(key, automaton.Encode(dfa, encodeTag))
	}
	return dfa, nil
}
