package cache

import (
	"github.com/IvanBrykalov/evictcache/internal/util"
	"github.com/IvanBrykalov/evictcache/policy"
)

// shard pairs one engine instance with its hot counters. The engine's
// own mutex is the per-shard lock; the counters are padded atomics so
// shards never false-share a cache line.
type shard[K comparable, V any] struct {
	eng policy.Policy[K, V]

	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
}

func (s *shard[K, V]) get(key K, m Metrics) (V, bool) {
	v, ok := s.eng.Get(key)
	if ok {
		s.hits.Add(1)
		m.Hit()
	} else {
		s.misses.Add(1)
		m.Miss()
	}
	return v, ok
}
