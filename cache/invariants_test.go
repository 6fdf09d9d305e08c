package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kushalsai-01/gocache/internal/arena"
)

// requireConsistent walks the arena from the index side and from the list
// side and fails if the two disagree.
func (c *RecencyCache[K, V]) requireConsistent(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity > 0 {
		require.LessOrEqual(t, len(c.items), c.capacity)
	}
	require.Equal(t, len(c.items), c.order.Len())
	require.Equal(t, len(c.items), c.slots.Len())

	seen := make(map[K]bool, len(c.items))
	for i := c.order.Front(); i != arena.None; i = c.slots.Next(i) {
		e := c.slots.Value(i)
		require.False(t, seen[e.Key], "duplicate key %v in list", e.Key)
		seen[e.Key] = true
		require.Equal(t, i, c.items[e.Key], "index disagrees for key %v", e.Key)
	}
	for k, i := range c.items {
		require.True(t, c.slots.Live(i), "key %v points at a free slot", k)
	}
}

func (c *SequenceCache[V]) requireConsistent(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity > 0 {
		require.LessOrEqual(t, c.order.Len(), c.capacity)
	}
	require.Equal(t, c.order.Len(), c.slots.Len())

	n := 0
	for i := c.order.Front(); i != arena.None; i = c.slots.Next(i) {
		n++
	}
	require.Equal(t, c.order.Len(), n)
}

func (c *FrequencyCache[K, V]) requireConsistent(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity > 0 {
		require.LessOrEqual(t, len(c.items), c.capacity)
	}
	require.Equal(t, len(c.items), c.keys.Len())

	total := 0
	lowest := 0
	for freq, b := range c.buckets {
		require.Positive(t, b.Len(), "empty bucket %d was not dropped", freq)
		if lowest == 0 || freq < lowest {
			lowest = freq
		}
		for i := b.Front(); i != arena.None; i = c.keys.Next(i) {
			k := c.keys.Value(i)
			e, ok := c.items[k]
			require.True(t, ok, "bucket %d holds unknown key %v", freq, k)
			require.Equal(t, freq, e.freq)
			require.Equal(t, i, e.slot)
			total++
		}
	}
	require.Equal(t, len(c.items), total)
	if len(c.items) > 0 {
		require.Equal(t, lowest, c.minFreq)
	}
}
