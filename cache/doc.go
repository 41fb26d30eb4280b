// Package cache composes any eviction engine into a sharded, concurrent
// cache. Keys are routed by hash to one of N independent engine
// instances, so unrelated keys never contend on the same lock.
//
// Design
//
//   - Sharding: the key hash picks exactly one shard (bitmask when the
//     shard count is a power of two). Each shard is a full engine with
//     its own mutex; the wrapper adds no second lock and no cross-shard
//     communication.
//
//   - Capacity: a requested total capacity T is split deterministically:
//     every shard receives ⌊T/N⌋ slots and the last shard absorbs the
//     remainder. The shard count is clamped so no shard ends up with
//     zero slots.
//
//   - Engines: the eviction strategy is pluggable via Options.Engine, a
//     factory invoked once per shard with that shard's capacity. LRU is
//     the default; the policy/lfu, policy/lruk and policy/arc packages
//     provide the rest of the family.
//
//   - Consistency: operations on a single key are linearizable (one
//     engine, one mutex). RemoveAll and Len visit shards one at a time
//     and are therefore not point-in-time snapshots.
//
//   - Metrics: Options.Metrics receives Hit/Miss signals; NoopMetrics is
//     the default and the metrics/prom package provides a Prometheus
//     adapter.
//
// Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	if err != nil {
//	    // invalid configuration
//	}
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// Using an alternative engine (ARC)
//
//	c, err := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Engine: func(capacity int) (policy.Policy[string, string], error) {
//	        return arc.New[string, string](capacity)
//	    },
//	})
package cache
