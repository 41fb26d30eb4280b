package arc

import "github.com/IvanBrykalov/evictcache/internal/engine"

// ghostList remembers keys whose values are gone: a key-only recency
// list plus a membership index. B1 holds keys recently evicted from T1,
// B2 keys recently evicted from T2.
type ghostList[K comparable] struct {
	order *engine.List[K, struct{}]
	index map[K]*engine.Node[K, struct{}]
}

func newGhostList[K comparable]() *ghostList[K] {
	return &ghostList[K]{
		order: engine.NewList[K, struct{}](),
		index: make(map[K]*engine.Node[K, struct{}]),
	}
}

// push records key at the MRU end. The key must not already be a ghost.
func (g *ghostList[K]) push(key K) {
	n := engine.NewNode(key, struct{}{})
	g.order.PushBack(n)
	g.index[key] = n
}

// contains reports ghost membership without touching recency.
func (g *ghostList[K]) contains(key K) bool {
	_, ok := g.index[key]
	return ok
}

// remove forgets the key if present.
func (g *ghostList[K]) remove(key K) {
	n, ok := g.index[key]
	if !ok {
		return
	}
	g.order.Remove(n)
	delete(g.index, key)
}

// removeOldest forgets the LRU-end ghost.
func (g *ghostList[K]) removeOldest() {
	n := g.order.Front()
	if n == nil {
		return
	}
	g.order.Remove(n)
	delete(g.index, n.Key())
}

func (g *ghostList[K]) len() int { return g.order.Len() }

func (g *ghostList[K]) clear() {
	g.order = engine.NewList[K, struct{}]()
	g.index = make(map[K]*engine.Node[K, struct{}])
}
