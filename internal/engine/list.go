// Package engine contains the single-threaded cores shared by the
// eviction engines: an intrusive recency list plus the LRU and LFU
// structures built on it. Cores hold no locks; the policy packages wrap
// them with a mutex, and composite engines (ARC, LRU-K) drive several
// cores under one outer mutex.
package engine

// Node is an intrusive doubly linked list element. It stores the
// key/value alongside the list links and an integer frequency used by
// the LFU family; the LRU core reuses the same field as a per-entry
// access counter.
type Node[K comparable, V any] struct {
	key  K
	val  V
	freq int

	prev *Node[K, V]
	next *Node[K, V]
}

// NewNode returns a detached node carrying key→val.
func NewNode[K comparable, V any](key K, val V) *Node[K, V] {
	return &Node[K, V]{key: key, val: val}
}

// Key returns the node key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the stored value.
func (n *Node[K, V]) Value() V { return n.val }

// SetValue overwrites the stored value in place.
func (n *Node[K, V]) SetValue(v V) { n.val = v }

// Freq returns the node frequency (LFU) or access count (LRU).
func (n *Node[K, V]) Freq() int { return n.freq }

// List is a recency list with head and tail sentinel nodes: the front is
// the LRU end, the back is the MRU end. Sentinels remove every nil check
// from insert and unlink.
type List[K comparable, V any] struct {
	head *Node[K, V]
	tail *Node[K, V]
	size int
}

// NewList returns an empty list with its sentinels wired.
func NewList[K comparable, V any]() *List[K, V] {
	l := &List[K, V]{
		head: &Node[K, V]{},
		tail: &Node[K, V]{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// PushBack inserts n at the MRU end. n must be detached.
func (l *List[K, V]) PushBack(n *Node[K, V]) {
	last := l.tail.prev
	last.next = n
	n.prev = last
	n.next = l.tail
	l.tail.prev = n
	l.size++
}

// Remove unlinks n from the list and detaches its pointers.
func (l *List[K, V]) Remove(n *Node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.size--
}

// MoveToBack re-files n at the MRU end.
func (l *List[K, V]) MoveToBack(n *Node[K, V]) {
	l.Remove(n)
	l.PushBack(n)
}

// Front returns the LRU-end node, or nil when the list is empty.
func (l *List[K, V]) Front() *Node[K, V] {
	if l.head.next == l.tail {
		return nil
	}
	return l.head.next
}

// Empty reports whether the list holds no real nodes.
func (l *List[K, V]) Empty() bool { return l.head.next == l.tail }

// Len returns the number of real nodes.
func (l *List[K, V]) Len() int { return l.size }
