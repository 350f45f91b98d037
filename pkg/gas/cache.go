package gas

import (
	"sync"
	"time"

	"wallet-swap/pkg/chains"
)

// CacheKey scopes a cached estimate to one chain and operation. Estimates are
// never shared across token pairs or operation kinds.
type CacheKey struct {
	Chain chains.Chain
	Kind  OperationKind
}

// Cache is a TTL cache for gas estimates. Time is injected so tests control
// expiry deterministically; callers own the instance rather than sharing
// process-wide state.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[CacheKey]cacheEntry
}

type cacheEntry struct {
	est     Estimate
	expires time.Time
}

// NewCache builds a cache with the given TTL. A nil clock uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[CacheKey]cacheEntry),
	}
}

// Get returns a live cached estimate, if any.
func (c *Cache) Get(key CacheKey) (Estimate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Estimate{}, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return Estimate{}, false
	}
	return e.est, true
}

// Put stores an estimate under the key for one TTL window.
func (c *Cache) Put(key CacheKey, est Estimate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{est: est, expires: c.now().Add(c.ttl)}
}

// Invalidate drops one key.
func (c *Cache) Invalidate(key CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
