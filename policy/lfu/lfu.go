// Package lfu implements the Least-Frequently-Used eviction engine and
// its aging variant. Entries are filed into per-frequency recency
// buckets; the victim is the oldest entry of the lowest-frequency
// bucket. The aging variant periodically decays every frequency so that
// newly popular entries can overtake stale winners.
package lfu

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/engine"
	"github.com/IvanBrykalov/evictcache/policy"
)

// Cache is a thread-safe fixed-capacity LFU cache.
type Cache[K comparable, V any] struct {
	mu   sync.Mutex
	core *engine.LFU[K, V]
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)

// New returns an LFU cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, errors.Errorf("lfu: capacity must be at least 1, got %d", capacity)
	}
	return &Cache[K, V]{core: engine.NewLFU[K, V](capacity)}, nil
}

// Put inserts or updates key→value. An update bumps the entry's
// frequency; an insert at capacity first evicts the oldest entry of the
// lowest-frequency bucket.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.Put(key, value)
}

// Get returns the value and bumps the frequency on hit.
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

// RemoveAll clears the cache, resetting the frequency index.
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
