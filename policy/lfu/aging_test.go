package lfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAging_DefaultLimit(t *testing.T) {
	t.Parallel()

	c, err := NewAging[string, int](4, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultAgingLimit, c.limit)

	_, err = NewAging[string, int](0, 5)
	require.Error(t, err)
}

// The end-to-end decay trace: once the average frequency exceeds the
// limit, every frequency drops by floor(limit/2) with a floor of 1, and
// the resident set is untouched.
func TestAging_Scenario(t *testing.T) {
	t.Parallel()

	c, err := NewAging[string, int](3, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")
	c.Get("a")
	c.Get("a") // sum 6 over 3 entries: avg 2, not yet over the limit
	c.Get("b") // sum 7: avg > 2, aging fires with delta 1

	require.Equal(t, 3, c.Len(), "aging must not evict")
	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, ok := c.Get(k)
		require.True(t, ok, "%s must stay resident", k)
		require.Equal(t, want, v)
	}

	c.Get("b")
	require.Equal(t, 3, c.Len())
}

// freqSum stays the exact sum of resident frequencies across touches,
// aging rounds, and removals; frequencies never drop below 1.
func TestAging_FreqSumStaysExact(t *testing.T) {
	t.Parallel()

	c, err := NewAging[string, int](3, 4)
	require.NoError(t, err)

	keys := []string{"x", "y", "z"}
	for i, k := range keys {
		c.Put(k, i)
	}
	for i := 0; i < 20; i++ {
		c.Get(keys[i%2]) // hammer x and y until aging fires repeatedly
	}

	sum := 0
	for _, k := range keys {
		n, ok := c.core.Lookup(k)
		require.True(t, ok, "%s must stay resident", k)
		require.GreaterOrEqual(t, n.Freq(), 1)
		sum += n.Freq()
	}
	require.Equal(t, sum, c.core.FreqSum())

	// Average is back under control after decay.
	avg := float64(c.core.FreqSum()) / float64(c.Len())
	require.LessOrEqual(t, avg, 4.0+2.0, "decay must keep the average near the limit")

	// Removal keeps the aggregate exact.
	xFreq := 0
	if n, ok := c.core.Lookup("x"); ok {
		xFreq = n.Freq()
	}
	c.Remove("x")
	require.Equal(t, sum-xFreq, c.core.FreqSum())
}

// Eviction still follows LFU order under aging.
func TestAging_EvictionStillLowestFrequency(t *testing.T) {
	t.Parallel()

	c, err := NewAging[string, int](2, 100) // huge limit: aging never fires
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3) // evicts b

	_, ok := c.Get("b")
	require.False(t, ok)
	_, ok = c.Get("a")
	require.True(t, ok)
}
