package cache

import (
	"github.com/pkg/errors"

	"github.com/IvanBrykalov/evictcache/internal/util"
	"github.com/IvanBrykalov/evictcache/policy"
	"github.com/IvanBrykalov/evictcache/policy/lru"
)

// Cache is a sharded key/value cache. All methods are safe for
// concurrent use; every operation on a key touches exactly one shard.
type Cache[K comparable, V any] struct {
	shards  []*shard[K, V]
	hash    func(K) uint64
	metrics Metrics
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)

// New constructs a sharded cache from opt. It fails on a non-positive
// capacity and propagates engine construction errors.
func New[K comparable, V any](opt Options[K, V]) (*Cache[K, V], error) {
	if opt.Capacity < 1 {
		return nil, errors.Errorf("cache: capacity must be at least 1, got %d", opt.Capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Hasher == nil {
		opt.Hasher = util.Hash64[K]
	}
	if opt.Engine == nil {
		opt.Engine = func(capacity int) (policy.Policy[K, V], error) {
			return lru.New[K, V](capacity)
		}
	}

	n := opt.Shards
	if n <= 0 {
		n = util.ReasonableShardCount()
	} else {
		n = int(util.NextPow2(uint64(n)))
	}
	// Every shard must hold at least one entry.
	if n > opt.Capacity {
		n = int(util.NextPow2(uint64(opt.Capacity)))
		for n > opt.Capacity {
			n >>= 1
		}
	}

	// Deterministic split: base slots everywhere, remainder to the last
	// shard.
	base, rem := opt.Capacity/n, opt.Capacity%n
	shards := make([]*shard[K, V], n)
	for i := range shards {
		c := base
		if i == n-1 {
			c += rem
		}
		eng, err := opt.Engine(c)
		if err != nil {
			return nil, errors.Wrapf(err, "cache: building shard %d", i)
		}
		shards[i] = &shard[K, V]{eng: eng}
	}

	return &Cache[K, V]{
		shards:  shards,
		hash:    opt.Hasher,
		metrics: opt.Metrics,
	}, nil
}

// Put inserts or updates key→value in the key's shard.
func (c *Cache[K, V]) Put(key K, value V) {
	c.shard(key).eng.Put(key, value)
}

// Get returns the value and a presence flag, applying the shard
// engine's access side effect on hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.shard(key).get(key, c.metrics)
}

// GetOrDefault returns the value on hit and the zero value of V on miss.
func (c *Cache[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes the key from its shard if present.
func (c *Cache[K, V]) Remove(key K) {
	c.shard(key).eng.Remove(key)
}

// RemoveAll clears every shard, one shard lock at a time. Concurrent
// writers may repopulate shards already cleared, so this is not a
// point-in-time snapshot of emptiness.
func (c *Cache[K, V]) RemoveAll() {
	for _, s := range c.shards {
		s.eng.RemoveAll()
	}
}

// Len returns the total number of resident entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.eng.Len()
	}
	return total
}

// NumShards returns the number of shards the cache was built with.
func (c *Cache[K, V]) NumShards() int { return len(c.shards) }

// Stats returns the cumulative hit and miss counts across all shards.
func (c *Cache[K, V]) Stats() (hits, misses uint64) {
	for _, s := range c.shards {
		hits += s.hits.Load()
		misses += s.misses.Load()
	}
	return hits, misses
}

// shard picks the target shard for key by hash.
func (c *Cache[K, V]) shard(key K) *shard[K, V] {
	return c.shards[util.ShardIndex(c.hash(key), len(c.shards))]
}
