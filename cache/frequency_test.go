package cache

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyEviction(t *testing.T) {
	c := NewFrequency[int, string](WithCapacity(2))

	c.Produce(1, "a")
	c.Produce(2, "b")
	c.Produce(1, "a2")
	c.Produce(3, "c")

	require.Equal(t, 2, c.Len())
	c.requireConsistent(t)

	v, ok := c.Consume(1)
	require.True(t, ok)
	assert.Equal(t, "a2", v)

	v, ok = c.Consume(3)
	require.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = c.Consume(2)
	assert.False(t, ok, "expected 2 to be evicted")
}

func TestFrequencyTieBreakOldestFirst(t *testing.T) {
	c := NewFrequency[string, int](WithCapacity(2))
	c.Produce("a", 1)
	c.Produce("b", 2)

	c.Produce("x", 3)
	_, ok := c.Frequency("a")
	assert.False(t, ok, "a was inserted first and must go first")

	c.requireConsistent(t)
}

func TestFrequencyTieBreakByPromotionOrder(t *testing.T) {
	c := NewFrequency[string, int](WithCapacity(3))
	c.Produce("a", 1)
	c.Produce("b", 2)
	c.Produce("c", 3)

	// b reaches frequency 2 before a does, so b is older in that bucket.
	c.Consume("b")
	c.Consume("a")
	c.Consume("c")

	c.Produce("d", 4)
	_, ok := c.Frequency("b")
	assert.False(t, ok, "b entered frequency 2 first")

	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Frequency(k)
		assert.True(t, ok, "expected %s to remain", k)
	}
	c.requireConsistent(t)
}

func TestFrequencyConsumeDoesNotRemove(t *testing.T) {
	c := NewFrequency[string, int]()
	c.Produce("k", 0)

	for want := 2; want <= 4; want++ {
		v, ok := c.Consume("k")
		require.True(t, ok)
		assert.Equal(t, 0, v)

		freq, ok := c.Frequency("k")
		require.True(t, ok)
		assert.Equal(t, want, freq)
	}
	assert.Equal(t, 1, c.Len())

	_, ok := c.Consume("missing")
	assert.False(t, ok)
	assert.Equal(t, Stats{Hits: 3, Misses: 1}, c.Stats())
}

func TestFrequencyProducePromotes(t *testing.T) {
	c := NewFrequency[int, string](WithCapacity(2))
	c.Produce(1, "a")
	c.Produce(1, "b")
	c.Produce(1, "c")

	freq, ok := c.Frequency(1)
	require.True(t, ok)
	assert.Equal(t, 3, freq)

	// Frequency must not count as an access.
	freq, _ = c.Frequency(1)
	assert.Equal(t, 3, freq)
	c.requireConsistent(t)
}

func TestFrequencyMinResetsOnInsert(t *testing.T) {
	c := NewFrequency[int, int](WithCapacity(2))
	c.Produce(1, 1)
	c.Consume(1)
	c.Consume(1) // key 1 at freq 3, min is 3
	c.Produce(2, 2)
	c.requireConsistent(t)

	// key 2 sits alone at freq 1 and is the victim.
	c.Produce(3, 3)
	_, ok := c.Frequency(2)
	assert.False(t, ok)
	_, ok = c.Frequency(1)
	assert.True(t, ok)
	c.requireConsistent(t)
}

func TestFrequencyCapacityOne(t *testing.T) {
	c := NewFrequency[int, int](WithCapacity(1))
	c.Produce(1, 1)
	c.Consume(1)
	c.Produce(2, 2)

	_, ok := c.Frequency(1)
	assert.False(t, ok)
	v, ok := c.Consume(2)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestFrequencyClear(t *testing.T) {
	c := NewFrequency[int, int](WithCapacity(3))
	c.Produce(1, 1)
	c.Produce(1, 1)
	c.Produce(2, 2)
	c.Clear()
	c.Clear()
	assert.Equal(t, 0, c.Len())
	c.requireConsistent(t)

	c.Produce(1, 5)
	freq, ok := c.Frequency(1)
	require.True(t, ok)
	assert.Equal(t, 1, freq, "clear must drop frequency history")
	c.requireConsistent(t)
}

func TestFrequencyNonPositiveCapacity(t *testing.T) {
	c := NewFrequency[int, int](WithCapacity(-1))
	c.Produce(1, 1)

	assert.Equal(t, 0, c.Len())
	_, ok := c.Consume(1)
	assert.False(t, ok)
	c.requireConsistent(t)
}

func TestFrequencyRandomOperationsStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewFrequency[int, int](WithCapacity(16))

	for step := range 20000 {
		key := rng.Intn(48)
		if rng.Intn(3) == 0 {
			c.Consume(key)
		} else {
			c.Produce(key, step)
		}
		if step%500 == 0 {
			c.requireConsistent(t)
		}
	}
	c.requireConsistent(t)
}

func TestFrequencyLogsEvictions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := NewFrequency[string, int](WithCapacity(1), WithLogger(logger))
	c.Produce("a", 1)
	c.Produce("b", 2)

	out := buf.String()
	assert.Contains(t, out, "evicted entry")
	assert.Contains(t, out, "policy=lfu")
	assert.Contains(t, out, "key=a")
}
