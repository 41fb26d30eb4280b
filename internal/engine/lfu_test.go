package engine

import "testing"

// checkInvariants verifies index/bucket agreement, the minFreq floor,
// and the exactness of freqSum.
func checkInvariants[K comparable, V any](t *testing.T, c *LFU[K, V]) {
	t.Helper()

	sum, indexed := 0, 0
	min := 0
	for f, b := range c.buckets {
		if b.Empty() {
			t.Fatalf("bucket %d is empty but retained", f)
		}
		for n := b.Front(); n != nil; {
			if n.Freq() != f {
				t.Fatalf("node %v has freq %d in bucket %d", n.Key(), n.Freq(), f)
			}
			if got, ok := c.items[n.Key()]; !ok || got != n {
				t.Fatalf("node %v not indexed to its bucket position", n.Key())
			}
			sum += f
			indexed++
			if n = n.next; n == b.tail {
				n = nil
			}
		}
		if min == 0 || f < min {
			min = f
		}
	}
	if indexed != len(c.items) {
		t.Fatalf("buckets hold %d nodes, index holds %d", indexed, len(c.items))
	}
	if c.minFreq != min {
		t.Fatalf("minFreq = %d, want %d", c.minFreq, min)
	}
	if c.freqSum != sum {
		t.Fatalf("freqSum = %d, want %d", c.freqSum, sum)
	}
}

// Touch uses the minFreq+1 shortcut when it empties the minimum bucket.
func TestLFU_TouchMinFreqFastPath(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](2)
	c.Put("a", 1)
	c.Get("a") // sole occupant of bucket 1 moves to bucket 2
	if c.MinFreq() != 2 {
		t.Fatalf("minFreq = %d, want 2", c.MinFreq())
	}
	checkInvariants(t, c)
}

// Explicit removal can make the minimum jump by more than one, so a
// rescan is required.
func TestLFU_RemoveRescansMinFreq(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("b")
	c.Get("b") // b at freq 3, a at freq 1

	c.Remove("a")
	if c.MinFreq() != 3 {
		t.Fatalf("minFreq = %d after removing the only freq-1 node, want 3", c.MinFreq())
	}
	checkInvariants(t, c)

	c.Remove("b")
	if c.MinFreq() != 0 {
		t.Fatalf("minFreq = %d on empty cache, want 0", c.MinFreq())
	}
}

// The victim is the oldest entry of the lowest-frequency bucket.
func TestLFU_EvictionTieBreak(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	// All at freq 1; a is the oldest. Touch nothing.
	k, v, ok := c.RemoveLeastFrequent()
	if !ok || k != "a" || v != 1 {
		t.Fatalf("RemoveLeastFrequent = (%v, %v, %v), want (a, 1, true)", k, v, ok)
	}
	checkInvariants(t, c)
}

func TestLFU_FreqSumTracksEveryMutation(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](4)
	c.Put("a", 1) // sum 1
	c.Put("b", 2) // sum 2
	c.Get("a")    // sum 3
	c.Get("a")    // sum 4
	c.Put("b", 9) // update touches: sum 5
	if c.FreqSum() != 5 {
		t.Fatalf("freqSum = %d, want 5", c.FreqSum())
	}
	c.Remove("a") // a was at freq 3: sum 2
	if c.FreqSum() != 2 {
		t.Fatalf("freqSum = %d after remove, want 2", c.FreqSum())
	}
	checkInvariants(t, c)
}

// Aging decays every frequency with a floor of 1, rebuilds the buckets,
// and keeps the resident set intact.
func TestLFU_AgeAll(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	for i := 0; i < 5; i++ {
		c.Get("a") // a at freq 6
	}
	c.Get("b") // b at freq 2

	c.AgeAll(2)
	checkInvariants(t, c)

	if c.Len() != 3 {
		t.Fatalf("Len = %d after aging, want 3", c.Len())
	}
	wantFreq := map[string]int{"a": 4, "b": 1, "c": 1} // max(1, old-2)
	for k, want := range wantFreq {
		n, ok := c.Lookup(k)
		if !ok {
			t.Fatalf("%s must survive aging", k)
		}
		if n.Freq() != want {
			t.Fatalf("freq(%s) = %d after aging, want %d", k, n.Freq(), want)
		}
	}
	if c.MinFreq() != 1 {
		t.Fatalf("minFreq = %d after aging, want 1", c.MinFreq())
	}
}

// At capacity, inserting evicts from the minimum bucket and files the
// newcomer under frequency 1.
func TestLFU_PutAtCapacity(t *testing.T) {
	t.Parallel()

	c := NewLFU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Get("a")

	c.Put("c", 3) // evicts b (freq 1), not a (freq 3)
	if _, ok := c.Lookup("b"); ok {
		t.Fatal("b must be evicted")
	}
	if c.MinFreq() != 1 {
		t.Fatalf("minFreq = %d after insert, want 1", c.MinFreq())
	}
	checkInvariants(t, c)
}
