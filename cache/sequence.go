package cache

import (
	"log/slog"
	"sync"

	"github.com/kushalsai-01/gocache/internal/arena"
)

// SequenceCache is a concurrency-safe bounded queue with FIFO eviction.
//
// Values are unkeyed and kept in insertion order. Reads never reorder, so the
// oldest inserted value is always the next one out, whether it is consumed or
// evicted.
type SequenceCache[V any] struct {
	mu sync.Mutex

	capacity int
	slots    *arena.Arena[V]
	order    arena.List // front = oldest

	stats  Stats
	logger *slog.Logger
}

// NewSequence constructs an empty FIFO cache.
func NewSequence[V any](opts ...Option) *SequenceCache[V] {
	o := buildOptions("fifo", opts)
	return &SequenceCache[V]{
		capacity: o.capacity,
		slots:    arena.New[V](o.initialSlots()),
		order:    arena.NewList(),
		logger:   o.logger,
	}
}

// Produce appends value as the newest entry, evicting the oldest one if the
// cache is over capacity.
func (c *SequenceCache[V]) Produce(value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	c.slots.PushBack(&c.order, value)
	for c.order.Len() > c.capacity {
		c.slots.Remove(&c.order, c.order.Front())
		c.stats.Evictions++
		c.logger.Debug("evicted entry", "size", c.order.Len())
	}
}

// Consume removes and returns the oldest value.
// The bool is false if the cache is empty.
func (c *SequenceCache[V]) Consume() (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.order.Front()
	c.stats.record(i != arena.None)
	if i == arena.None {
		var zero V
		return zero, false
	}
	return c.slots.Remove(&c.order, i), true
}

// ConsumeN removes and returns up to n of the oldest values, oldest first.
func (c *SequenceCache[V]) ConsumeN(n int) []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	n = max(0, min(n, c.order.Len()))
	out := make([]V, 0, n)
	for range n {
		out = append(out, c.slots.Remove(&c.order, c.order.Front()))
	}
	return out
}

// Len returns the number of cached values.
func (c *SequenceCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cap returns the configured capacity.
func (c *SequenceCache[V]) Cap() int {
	return c.capacity
}

// Clear drops every value. Counters are kept.
func (c *SequenceCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.order.Len()
	c.slots.Reset()
	c.order = arena.NewList()
	if n > 0 {
		c.logger.Debug("cache cleared", "dropped", n)
	}
}

// Stats returns a snapshot of the cache counters.
func (c *SequenceCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
