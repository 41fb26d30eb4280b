package lfu

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/engine"
	"github.com/IvanBrykalov/evictcache/policy"
)

// DefaultAgingLimit is the average-frequency threshold used when
// NewAging receives a non-positive limit.
const DefaultAgingLimit = 10.0

// AgingCache is an LFU cache with frequency decay. After every insertion
// and every touch it compares the average resident frequency against the
// configured limit; once the average exceeds it, every frequency is
// reduced by floor(limit/2) with a floor of 1.
//
// There is no way to disable aging; pass a huge limit instead.
type AgingCache[K comparable, V any] struct {
	mu    sync.Mutex
	limit float64
	core  *engine.LFU[K, V]
}

var _ policy.Policy[string, int] = (*AgingCache[string, int])(nil)

// NewAging returns an LFU-Aging cache holding at most capacity entries.
// A non-positive limit falls back to DefaultAgingLimit.
func NewAging[K comparable, V any](capacity int, limit float64) (*AgingCache[K, V], error) {
	if capacity < 1 {
		return nil, errors.Errorf("lfu: capacity must be at least 1, got %d", capacity)
	}
	if limit <= 0 {
		limit = DefaultAgingLimit
	}
	return &AgingCache[K, V]{
		limit: limit,
		core:  engine.NewLFU[K, V](capacity),
	}, nil
}

// Put inserts or updates key→value and runs the aging check.
func (c *AgingCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.Put(key, value)
	c.maybeAge()
}

// Get returns the value on hit, bumps the frequency, and runs the aging
// check. A miss leaves every frequency untouched.
func (c *AgingCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.core.Get(key)
	if ok {
		c.maybeAge()
	}
	return v, ok
}

// GetOrDefault returns the value on hit and the zero value of V on miss.
func (c *AgingCache[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes the key if present.
func (c *AgingCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.Remove(key)
}

// RemoveAll clears the cache, resetting the frequency index and the
// frequency sum.
func (c *AgingCache[K, V]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.core.RemoveAll()
}

// Len returns the number of resident entries.
func (c *AgingCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.core.Len()
}

// maybeAge decays all frequencies once the resident average exceeds the
// limit. Aging never changes the resident set.
func (c *AgingCache[K, V]) maybeAge() {
	n := c.core.Len()
	if n == 0 {
		return
	}
	if avg := float64(c.core.FreqSum()) / float64(n); avg > c.limit {
		c.core.AgeAll(int(c.limit / 2))
	}
}
