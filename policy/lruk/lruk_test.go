package lruk

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUK_Validation(t *testing.T) {
	t.Parallel()

	_, err := New[string, int](0, 4, 4)
	require.Error(t, err)
	_, err = New[string, int](2, 0, 4)
	require.Error(t, err)
	_, err = New[string, int](2, 4, 0)
	require.Error(t, err)
	_, err = New[string, int](1, 1, 1)
	require.NoError(t, err)
}

// A key earns admission only after k prior references; the admitting
// reference installs the most recently offered value.
func TestLRUK_AdmissionAfterKReferences(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 3, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	require.Equal(t, 0, c.Len(), "one reference must not admit")

	_, ok := c.Get("a")
	require.False(t, ok, "a is still history-resident")
	require.Equal(t, 0, c.Len(), "two references with k=2 must not admit yet")

	c.Put("a", 2) // third reference: installs with the value it offers
	require.Equal(t, 1, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v, "admission must use the most recent offered value")
}

// The full admission trace across three keys and a bounded main cache.
func TestLRUK_Scenario(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 3, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	_, ok := c.Get("a")
	require.False(t, ok)
	c.Put("a", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)

	c.Put("b", 1)
	_, ok = c.Get("b")
	require.False(t, ok)
	c.Put("b", 2)
	v, ok = c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	c.Put("c", 1)
	c.Put("c", 2) // only two references: c stays out of main
	v, ok = c.Get("a")
	require.True(t, ok, "a stays resident while c is still on probation")
	require.Equal(t, 2, v)
	v, ok = c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

// One-shot scans never displace the working set.
func TestLRUK_FiltersOneShotScan(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 64, 2)
	require.NoError(t, err)

	// Earn admission for two hot keys.
	for _, k := range []string{"hot1", "hot2"} {
		c.Put(k, 1)
		c.Put(k, 1)
		c.Put(k, 1)
	}
	require.Equal(t, 2, c.Len())

	// A long scan of cold keys, each referenced once.
	for i := 0; i < 50; i++ {
		c.Put("cold"+strconv.Itoa(i), i)
	}

	require.Equal(t, 2, c.Len(), "scan keys must all die in history")
	_, ok := c.Get("hot1")
	require.True(t, ok)
	_, ok = c.Get("hot2")
	require.True(t, ok)
}

// A get can promote using the staged value once the key has earned
// admission.
func TestLRUK_GetPromotesFromStaging(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 4, 2)
	require.NoError(t, err)

	c.Put("a", 7) // ref 1, stages 7
	_, ok := c.Get("a")
	require.False(t, ok) // ref 2
	v, ok := c.Get("a")  // ref 3: admits with the staged value
	require.True(t, ok)
	require.Equal(t, 7, v)
}

// Put on a main-resident key overwrites in place.
func TestLRUK_UpdateMainResident(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](1, 4, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("a", 2) // k=1: second reference admits
	require.Equal(t, 1, c.Len())
	c.Put("a", 3) // overwrite in main
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 3, v)
}

// Remove clears the key from main, history, and staging; the key must
// re-earn admission from scratch.
func TestLRUK_RemoveClearsAllTiers(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 4, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("a", 2)
	c.Put("a", 3) // admitted
	c.Remove("a")
	require.Equal(t, 0, c.Len())

	c.Put("a", 9)
	require.Equal(t, 0, c.Len(), "history must have been reset")

	c.Remove("a") // double remove of a probation key: no-op
	c.RemoveAll()
	_, ok := c.Get("a")
	require.False(t, ok)
}

// History eviction drops the matching staged value, so staging never
// outgrows the history capacity.
func TestLRUK_StagingBoundedByHistory(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 2, 2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // history holds 2: a's count and staged value fall out

	require.LessOrEqual(t, len(c.staging), 2)

	// a must start from zero again: two more references stage it, the
	// third admits.
	c.Put("a", 4)
	require.Equal(t, 0, c.Len())
	c.Put("a", 5)
	require.Equal(t, 0, c.Len())
	c.Put("a", 6)
	require.Equal(t, 1, c.Len())
}
