package cache

import "github.com/IvanBrykalov/evictcache/policy"

// Options configures the sharded cache. Zero values are safe; defaults
// are applied in New:
//   - nil Engine   => LRU per shard
//   - Shards <= 0  => auto (≈ 2*GOMAXPROCS, rounded to a power of two)
//   - nil Hasher   => util.Hash64 over common key types
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the total entry limit, split across shards.
	Capacity int

	// Shards is the number of independent engine instances. Values <= 0
	// choose an automatic count; any value is rounded up to a power of
	// two and clamped so every shard gets at least one slot.
	Shards int

	// Engine builds one engine per shard with that shard's capacity.
	Engine func(capacity int) (policy.Policy[K, V], error)

	// Hasher overrides the shard-routing hash. Required for key types
	// the default hasher does not recognize.
	Hasher func(K) uint64

	// Metrics receives Hit/Miss signals from every shard.
	Metrics Metrics
}
