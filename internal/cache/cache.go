// Package cache provides a small TTL cache for read-heavy query results.
package cache

import (
	"sync"
	"time"
)

// Cache stores query results keyed by logical query name. Entries expire
// after the configured TTL. Any mutation to the underlying data must call
// Invalidate, which drops every entry rather than tracking which keys a
// mutation affects.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	value    any
	storedAt time.Time
}

// New creates a cache with the given TTL. A TTL of zero disables caching
// entirely since every entry is immediately stale.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key if it exists and is still fresh.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, storedAt: time.Now()}
}

// Invalidate drops all entries.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
