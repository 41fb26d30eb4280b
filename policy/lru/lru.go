// Package lru implements the Least-Recently-Used eviction engine: one
// recency list, strict oldest-first eviction.
package lru

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/engine"
	"github.com/IvanBrykalov/evictcache/policy"
)

// Cache is a thread-safe fixed-capacity LRU cache.
type Cache[K comparable, V any] struct {
	mu   sync.Mutex
	core *engine.LRU[K, V]
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)

// New returns an LRU cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, errors.Errorf("lru: capacity must be at least 1, got %d", capacity)
	}
	return &Cache[K, V]{core: engine.NewLRU[K, V](capacity)}, nil
}

// Put inserts or updates key→value, evicting the least recently used
// entry when a fresh insert finds the cache full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.Put(key, value)
}

// Get returns the value and promotes the entry on hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.core.Get(key)
}

// GetOrDefault returns the value on hit and the zero value of V on miss.
func (c *Cache[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes the key if present.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.Remove(key)
}

// RemoveAll clears the cache.
func (c *Cache[K, V]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.RemoveAll()
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.core.Len()
}
