package stream

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds shared streams keyed by name so that repeated lookups reuse the
// same upstream.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
	sf      singleflight.Group
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Cached returns the stream stored under key, building it with create on first use.
// Uses singleflight so concurrent first lookups build the stream once.
func Cached[T any](c *Cache, key string, create func() Observable[T]) Observable[T] {
	// Fast path
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if obs, ok := entry.(Observable[T]); exists && ok {
		return obs
	}

	result, _, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if obs, ok := entry.(Observable[T]); exists && ok {
			return obs, nil
		}

		obs := create()

		c.mu.Lock()
		c.entries[key] = obs
		c.mu.Unlock()

		return obs, nil
	})

	// A concurrent lookup of the same key with another element type shares
	// the in-flight result; build our own stream instead.
	obs, ok := result.(Observable[T])
	if !ok {
		obs = create()
		c.mu.Lock()
		c.entries[key] = obs
		c.mu.Unlock()
	}
	return obs
}

// Invalidate removes the stream stored under key. Existing subscribers keep
// their subscription; the next lookup builds a fresh stream.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every stream.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]any)
	c.mu.Unlock()
}

// Len reports the number of cached streams.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
