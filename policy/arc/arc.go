// Package arc implements the Adaptive Replacement Cache: two resident
// lists (T1 for entries seen once recently, T2 for entries seen at
// least twice) plus two ghost lists B1/B2 remembering what was evicted
// from each. A hit on a ghost means the cache guessed wrong, so the
// split parameter p shifts capacity toward whichever side was starved.
//
// See https://ieeexplore.ieee.org/document/1297303.
package arc

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/engine"
	"github.com/IvanBrykalov/evictcache/policy"
)

// Cache is a thread-safe ARC cache. The embedded T1 (LRU core) and T2
// (LFU core) are private collaborators driven single-threaded under the
// one outer mutex.
//
// Invariants on every return: |T1|+|T2| <= capacity, |B1|+|B2| <=
// capacity, the four sets pairwise disjoint, p in [0, capacity].
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	p        int

	t1 *engine.LRU[K, V]
	t2 *engine.LFU[K, V]
	b1 *ghostList[K]
	b2 *ghostList[K]
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)

// New returns an ARC cache with at most capacity resident entries and at
// most capacity ghosts.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, errors.Errorf("arc: capacity must be at least 1, got %d", capacity)
	}
	return &Cache[K, V]{
		capacity: capacity,
		t1:       engine.NewLRU[K, V](capacity),
		t2:       engine.NewLFU[K, V](capacity),
		b1:       newGhostList[K](),
		b2:       newGhostList[K](),
	}, nil
}

// Put inserts or updates key→value, adapting p on ghost hits.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Resident in T1: one reuse proves frequency, migrate to T2.
	if _, ok := c.t1.Get(key); ok {
		c.t1.Remove(key)
		c.t2.Put(key, value)
		return
	}
	// Resident in T2: overwrite and refresh.
	if _, ok := c.t2.Lookup(key); ok {
		c.t2.Put(key, value)
		return
	}

	// Ghost hit in B1: T1 evicted this too soon, grow p toward recency.
	if c.b1.contains(key) {
		c.p = min(c.capacity, c.p+max(c.b2.len()/c.b1.len(), 1))
		c.replace(key)
		c.b1.remove(key)
		c.t2.Put(key, value)
		return
	}
	// Ghost hit in B2: T2 evicted this too soon, shrink p toward frequency.
	if c.b2.contains(key) {
		c.p = max(0, c.p-max(c.b1.len()/c.b2.len(), 1))
		c.replace(key)
		c.b2.remove(key)
		c.t2.Put(key, value)
		return
	}

	// Full miss.
	t1n, t2n := c.t1.Len(), c.t2.Len()
	b1n, b2n := c.b1.len(), c.b2.len()
	if t1n+b1n == c.capacity {
		if t1n < c.capacity {
			c.b1.removeOldest()
			c.replace(key)
		} else if k, _, ok := c.t1.RemoveOldest(); ok {
			c.b1.push(k)
			c.trimGhosts()
		}
	} else if t1n+t2n+b1n+b2n >= c.capacity {
		if t1n+t2n+b1n+b2n == 2*c.capacity {
			c.b2.removeOldest()
		}
		c.replace(key)
	}
	c.t1.Put(key, value)
}

// Get returns the value for a resident key. A T1 hit migrates the entry
// to T2; a T2 hit refreshes it. Ghost hits are misses: the value is
// gone.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.t1.Get(key); ok {
		c.t1.Remove(key)
		c.t2.Put(key, v)
		return v, true
	}
	if v, ok := c.t2.Get(key); ok {
		return v, true
	}
	var zero V
	return zero, false
}

// GetOrDefault returns the value on hit and the zero value of V on miss.
func (c *Cache[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes the key from whichever of T1, T2, B1, B2 holds it; the
// four sets are disjoint, so at most one does.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t1.Remove(key)
	c.t2.Remove(key)
	c.b1.remove(key)
	c.b2.remove(key)
}

// RemoveAll clears all four lists and resets p to 0.
func (c *Cache[K, V]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t1.RemoveAll()
	c.t2.RemoveAll()
	c.b1.clear()
	c.b2.clear()
	c.p = 0
}

// Len returns the number of resident entries; ghosts occupy no slots.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t1.Len() + c.t2.Len()
}

// replace makes room for an incoming entry: evict T1's LRU into B1 when
// T1 is over its target share p (or exactly at it while the incoming key
// argues for frequency, or when T2 is empty), otherwise evict T2's victim
// into B2.
func (c *Cache[K, V]) replace(incoming K) {
	t1n := c.t1.Len()
	if t1n >= 1 && (t1n > c.p || (c.b2.contains(incoming) && t1n == c.p) || c.t2.Len() == 0) {
		if k, _, ok := c.t1.RemoveOldest(); ok {
			c.b1.push(k)
		}
	} else if k, _, ok := c.t2.RemoveLeastFrequent(); ok {
		c.b2.push(k)
	}
	c.trimGhosts()
}

// trimGhosts drops LRU-end ghosts from the longer list until the ghost
// directory fits the capacity again. Runs after every ghost push so the
// |B1|+|B2| <= capacity bound holds on every return, including after
// explicit removals shrank the resident set.
func (c *Cache[K, V]) trimGhosts() {
	for c.b1.len()+c.b2.len() > c.capacity {
		if c.b1.len() >= c.b2.len() {
			c.b1.removeOldest()
		} else {
			c.b2.removeOldest()
		}
	}
}
