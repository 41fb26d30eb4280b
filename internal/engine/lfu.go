package engine

// LFU is the single-threaded frequency core: a key→node index, a
// freq→recency-list bucket index, and the smallest non-empty frequency.
// Within a bucket the list runs from LRU front to MRU back, so the
// eviction victim is always the oldest entry of the lowest-frequency
// cohort.
//
// freqSum tracks the exact sum of resident frequencies. The pure LFU
// engine ignores it; the aging variant reads it after every insertion
// and every touch.
type LFU[K comparable, V any] struct {
	capacity int
	minFreq  int
	freqSum  int
	items    map[K]*Node[K, V]
	buckets  map[int]*List[K, V]
}

// NewLFU returns an empty core bounded to capacity entries.
func NewLFU[K comparable, V any](capacity int) *LFU[K, V] {
	return &LFU[K, V]{
		capacity: capacity,
		items:    make(map[K]*Node[K, V], capacity),
		buckets:  make(map[int]*List[K, V]),
	}
}

// Put inserts or updates key→val. An update bumps the frequency; an
// insert at capacity evicts the oldest entry of the minFreq bucket, then
// files the new entry under frequency 1.
func (c *LFU[K, V]) Put(key K, val V) {
	if n, ok := c.items[key]; ok {
		n.SetValue(val)
		c.Touch(n)
		return
	}
	if len(c.items) >= c.capacity {
		c.RemoveLeastFrequent()
	}
	n := NewNode(key, val)
	n.freq = 1
	c.bucket(1).PushBack(n)
	c.items[key] = n
	c.minFreq = 1
	c.freqSum++
}

// Get returns the value and bumps the frequency on hit.
func (c *LFU[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.Touch(n)
	return n.Value(), true
}

// GetOrDefault returns the value on hit (bumping the frequency) and the
// zero value of V otherwise.
func (c *LFU[K, V]) GetOrDefault(key K) V {
	v, _ := c.Get(key)
	return v
}

// Lookup returns the node without applying the access side effect.
func (c *LFU[K, V]) Lookup(key K) (*Node[K, V], bool) {
	n, ok := c.items[key]
	return n, ok
}

// Touch moves n one frequency bucket up and re-files it at the MRU end.
// The minFreq+1 shortcut is valid here and only here: the touched node
// was the sole occupant of the minimum bucket and lands exactly one
// bucket higher.
func (c *LFU[K, V]) Touch(n *Node[K, V]) {
	f := n.freq
	b := c.buckets[f]
	b.Remove(n)
	if b.Empty() {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.minFreq = f + 1
		}
	}
	n.freq = f + 1
	c.bucket(n.freq).PushBack(n)
	c.freqSum++
}

// Remove deletes the key if present and reports whether it was. Unlike
// Touch, emptying the minimum bucket here requires a rescan: removal can
// make the true minimum jump by more than one.
func (c *LFU[K, V]) Remove(key K) bool {
	n, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(n)
	return true
}

// RemoveLeastFrequent evicts the LRU end of the minFreq bucket and
// returns it.
func (c *LFU[K, V]) RemoveLeastFrequent() (K, V, bool) {
	b, ok := c.buckets[c.minFreq]
	if !ok || b.Empty() {
		var k K
		var v V
		return k, v, false
	}
	n := b.Front()
	c.unlink(n)
	return n.Key(), n.Value(), true
}

// RemoveAll resets the core to its post-construction state.
func (c *LFU[K, V]) RemoveAll() {
	c.items = make(map[K]*Node[K, V], c.capacity)
	c.buckets = make(map[int]*List[K, V])
	c.minFreq = 0
	c.freqSum = 0
}

// AgeAll applies uniform decay: every resident frequency becomes
// max(1, freq-delta). Buckets are rebuilt from scratch, freqSum is
// recomputed exactly, and minFreq is reset to the smallest surviving
// frequency. The resident set never changes.
func (c *LFU[K, V]) AgeAll(delta int) {
	c.buckets = make(map[int]*List[K, V])
	c.freqSum = 0
	c.minFreq = 0
	for _, n := range c.items {
		n.prev, n.next = nil, nil
		if n.freq -= delta; n.freq < 1 {
			n.freq = 1
		}
		c.bucket(n.freq).PushBack(n)
		c.freqSum += n.freq
		if c.minFreq == 0 || n.freq < c.minFreq {
			c.minFreq = n.freq
		}
	}
}

// Len returns the number of resident entries.
func (c *LFU[K, V]) Len() int { return len(c.items) }

// Cap returns the configured capacity.
func (c *LFU[K, V]) Cap() int { return c.capacity }

// FreqSum returns the exact sum of resident frequencies.
func (c *LFU[K, V]) FreqSum() int { return c.freqSum }

// MinFreq returns the smallest non-empty frequency, or 0 when empty.
func (c *LFU[K, V]) MinFreq() int { return c.minFreq }

// bucket returns the recency list for frequency f, creating it on first
// use.
func (c *LFU[K, V]) bucket(f int) *List[K, V] {
	b, ok := c.buckets[f]
	if !ok {
		b = NewList[K, V]()
		c.buckets[f] = b
	}
	return b
}

// unlink detaches n from its bucket and the index, dropping the bucket
// when it empties and rescanning minFreq if the minimum bucket died.
func (c *LFU[K, V]) unlink(n *Node[K, V]) {
	f := n.freq
	b := c.buckets[f]
	b.Remove(n)
	delete(c.items, n.Key())
	c.freqSum -= f
	if b.Empty() {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.rescanMinFreq()
		}
	}
}

// rescanMinFreq recomputes minFreq over all non-empty buckets; 0 when
// the cache is empty.
func (c *LFU[K, V]) rescanMinFreq() {
	c.minFreq = 0
	for f, b := range c.buckets {
		if b.Empty() {
			continue
		}
		if c.minFreq == 0 || f < c.minFreq {
			c.minFreq = f
		}
	}
}
