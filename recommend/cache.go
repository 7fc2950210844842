package recommend

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/poiesic/librarian/core"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = time.Hour
)

// Cache is a bounded TTL memo. By default entries are keyed on the
// normalized input string, so "  Rebellion " and "rebellion" share an
// entry. Safe for concurrent use.
type Cache[V any] struct {
	lru    *expirable.LRU[string, V]
	key    func(string) string
	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheOption configures a Cache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	key func(string) string
}

// WithExactKeys keys entries on the input exactly as given. Use it where
// the input selects a record by exact match, such as a corpus title.
func WithExactKeys() CacheOption {
	return func(o *cacheOptions) {
		o.key = func(s string) string { return s }
	}
}

// CacheStats is a point-in-time view of cache counters.
type CacheStats struct {
	Len    int    `json:"len"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// NewCache creates a cache holding at most size entries for ttl each.
// Non-positive values fall back to DefaultCacheSize and DefaultCacheTTL.
func NewCache[V any](size int, ttl time.Duration, opts ...CacheOption) *Cache[V] {
	o := cacheOptions{key: core.NormalizeQuery}
	for _, opt := range opts {
		opt(&o)
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
		key: o.key,
	}
}

// Get returns the entry for input if present and unexpired.
func (c *Cache[V]) Get(input string) (V, bool) {
	v, ok := c.lru.Get(c.key(input))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Add stores value under the key for input.
func (c *Cache[V]) Add(input string, value V) {
	c.lru.Add(c.key(input), value)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Stats returns current counters.
func (c *Cache[V]) Stats() CacheStats {
	return CacheStats{
		Len:    c.lru.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
