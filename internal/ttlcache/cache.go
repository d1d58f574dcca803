// Package ttlcache is a process-local key/value store with per-entry
// expiry. Expiry is lazy: entries are evicted when a Get observes them
// expired, or when a substring invalidation sweeps them; there is no
// background eviction goroutine.
package ttlcache

import (
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Cache[V any] struct {
	mu         sync.Mutex
	defaultTTL time.Duration
	now        func() time.Time
	entries    map[string]entry[V]
}

type Option[V any] func(*Cache[V])

// WithClock substitutes the time source, for deterministic tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

func New[V any](defaultTTL time.Duration, options ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		defaultTTL: defaultTTL,
		now:        time.Now,
		entries:    make(map[string]entry[V]),
	}

	for _, fn := range options {
		fn(c)
	}

	return c
}

// Get returns the live value under key. An expired entry reads as
// absent and is evicted on the way out.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL. A Set always
// creates a fresh entry; entries are never refreshed in place.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL. A zero or
// negative TTL stores an entry that is already expired; deciding that
// zero means "caching disabled" belongs to the owning layer.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

// Invalidate evicts every key containing pattern as a substring and
// returns the number of entries removed.
func (c *Cache[V]) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
}

// Len counts stored entries, expired ones included until something
// evicts them.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
