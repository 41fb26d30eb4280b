// Package lruk implements the LRU-K admission filter: a main LRU cache
// that a key may only enter after it has already earned K observed
// references. One-shot scans never displace the working set because
// their keys die in the reference history instead of the main cache.
package lruk

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/engine"
	"github.com/IvanBrykalov/evictcache/policy"
)

// Cache is a thread-safe LRU-K cache. Three collaborators live behind
// one mutex:
//
//   - main: an LRU core holding promoted entries; Len reports only these.
//   - history: an LRU core mapping key→reference count for keys that are
//     not (yet) main-resident.
//   - staging: the most recently offered value per history key, so a
//     promotion triggered by a later reference installs the right value.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	k       int
	main    *engine.LRU[K, V]
	history *engine.LRU[K, int]
	staging map[K]V
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)

// New returns an LRU-K cache. k is the promotion threshold,
// historyCapacity bounds the reference history, mainCapacity bounds the
// promoted set.
func New[K comparable, V any](k, historyCapacity, mainCapacity int) (*Cache[K, V], error) {
	if k < 1 {
		return nil, errors.Errorf("lruk: k must be at least 1, got %d", k)
	}
	if historyCapacity < 1 {
		return nil, errors.Errorf("lruk: history capacity must be at least 1, got %d", historyCapacity)
	}
	if mainCapacity < 1 {
		return nil, errors.Errorf("lruk: main capacity must be at least 1, got %d", mainCapacity)
	}
	return &Cache[K, V]{
		k:       k,
		main:    engine.NewLRU[K, V](mainCapacity),
		history: engine.NewLRU[K, int](historyCapacity),
		staging: make(map[K]V),
	}, nil
}

// Put overwrites a main-resident key in place; otherwise it records one
// more reference, promoting the key once it has already earned k of
// them.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.main.Get(key); ok {
		c.main.Put(key, value)
		return
	}
	c.reference(key, value)
}

// Get returns the value for a main-resident key. A reference to a key
// still in history counts toward promotion using its staged value; a
// reference to an unknown key bumps the history count only.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.main.Get(key); ok {
		return v, true
	}
	if v, ok := c.staging[key]; ok {
		c.reference(key, v)
		// Hit iff the reference just promoted the key.
		return c.main.Get(key)
	}
	cnt := c.history.GetOrDefault(key)
	c.putHistory(key, cnt+1)
	var zero V
	return zero, false
}

// GetOrDefault returns the value on hit and the zero value of V on miss.
func (c *Cache[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes the key from the main cache, the history, and staging.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main.Remove(key)
	c.history.Remove(key)
	delete(c.staging, key)
}

// RemoveAll clears all three collaborators.
func (c *Cache[K, V]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main.RemoveAll()
	c.history.RemoveAll()
	c.staging = make(map[K]V)
}

// Len returns the number of main-resident entries. Keys waiting in
// history do not occupy cache slots.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

// reference records one observed reference to a non-main key carrying
// value val. Once the key has already earned k references, this one
// installs (key, val) into the main cache and clears its history;
// otherwise the new count and the offered value are retained.
func (c *Cache[K, V]) reference(key K, val V) {
	cnt := c.history.GetOrDefault(key) + 1
	if cnt > c.k {
		c.main.Put(key, val)
		c.history.Remove(key)
		delete(c.staging, key)
		return
	}
	c.putHistory(key, cnt)
	c.staging[key] = val
}

// putHistory stores a reference count, dropping the staged value of
// whichever key the history evicts to make room. Staging only ever
// holds values for keys currently in history.
func (c *Cache[K, V]) putHistory(key K, cnt int) {
	if cnt == 1 && c.history.Len() >= c.history.Cap() {
		if old, _, ok := c.history.RemoveOldest(); ok {
			delete(c.staging, old)
		}
	}
	c.history.Put(key, cnt)
}
