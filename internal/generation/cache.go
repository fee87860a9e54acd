package generation

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached response stays valid.
const DefaultCacheTTL = 5 * time.Minute

// keySeparator joins cache key parts. The unit separator keeps distinct
// argument tuples from colliding even when arguments contain common
// punctuation.
const keySeparator = "\x1f"

// CacheKey builds a deterministic cache key from an operation name and its
// normalized arguments. Equal tuples map to equal keys and distinct tuples
// to distinct keys.
func CacheKey(op string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	parts = append(parts, args...)
	return strings.Join(parts, keySeparator)
}

// cacheEntry pairs a payload with its creation time.
type cacheEntry[T any] struct {
	data      T
	createdAt time.Time
}

// Cache is a TTL-bounded memoization map. Expired entries are evicted
// lazily on the next lookup; there is no size bound, an accepted tradeoff
// for a process-lifetime cache of bounded request variety.
//
// TODO(store): add a bounded LRU wrapper if this is ever reused in a
// multi-tenant long-lived server with unbounded key cardinality.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[T]

	// now is swapped out in tests to control the clock.
	now func() time.Time
}

// NewCache creates a Cache with the given TTL. A non-positive TTL falls
// back to DefaultCacheTTL.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

// Get returns the cached payload for key and true on a fresh hit. An entry
// older than the TTL is evicted and reported absent.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(entry.createdAt) >= c.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return entry.data, true
}

// Set stores the payload for key, replacing any previous entry.
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[T]{data: data, createdAt: c.now()}
}

// Len returns the number of entries currently held, including any that
// have expired but not yet been evicted.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
