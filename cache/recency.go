package cache

import (
	"log/slog"
	"sync"

	"github.com/kushalsai-01/gocache/internal/arena"
)

// RecencyCache is a concurrency-safe bounded map with LRU eviction.
//
// A map gives O(1) key lookup and an index-linked list keeps recency order:
// front is least recently produced, back is most recently produced.
// Only Produce updates recency; Consume removes what it returns.
type RecencyCache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	items    map[K]int // key -> arena slot
	slots    *arena.Arena[Entry[K, V]]
	order    arena.List

	stats  Stats
	logger *slog.Logger
}

// NewRecency constructs an empty LRU cache.
//
// NewRecency never returns nil.
func NewRecency[K comparable, V any](opts ...Option) *RecencyCache[K, V] {
	o := buildOptions("lru", opts)
	return &RecencyCache[K, V]{
		capacity: o.capacity,
		items:    make(map[K]int, o.initialSlots()),
		slots:    arena.New[Entry[K, V]](o.initialSlots()),
		order:    arena.NewList(),
		logger:   o.logger,
	}
}

// Produce inserts or overwrites key and marks it most recently used.
//
// Inserting a new key into a full cache evicts exactly one entry, the least
// recently used one.
func (c *RecencyCache[K, V]) Produce(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	if i, ok := c.items[key]; ok {
		c.slots.Set(i, Entry[K, V]{Key: key, Value: value})
		c.slots.MoveToBack(&c.order, i)
		return
	}

	c.items[key] = c.slots.PushBack(&c.order, Entry[K, V]{Key: key, Value: value})
	c.evictIfNeededLocked()
}

// Consume removes key and returns its value.
// The bool is false if key was not cached.
func (c *RecencyCache[K, V]) Consume(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.items[key]
	c.stats.record(ok)
	if !ok {
		var zero V
		return zero, false
	}
	return c.deleteLocked(i).Value, true
}

// ConsumeOldest removes and returns the least recently used entry.
// The bool is false if the cache is empty.
func (c *RecencyCache[K, V]) ConsumeOldest() (K, V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.order.Front()
	c.stats.record(i != arena.None)
	if i == arena.None {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	e := c.deleteLocked(i)
	return e.Key, e.Value, true
}

// ConsumeN removes and returns up to n least recently used entries,
// oldest first. It never returns more than Len entries.
func (c *RecencyCache[K, V]) ConsumeN(n int) []Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	n = max(0, min(n, len(c.items)))
	out := make([]Entry[K, V], 0, n)
	for range n {
		out = append(out, c.deleteLocked(c.order.Front()))
	}
	return out
}

// Len returns the number of cached entries.
func (c *RecencyCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cap returns the configured capacity.
func (c *RecencyCache[K, V]) Cap() int {
	return c.capacity
}

// Clear drops every entry. Counters are kept.
func (c *RecencyCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	clear(c.items)
	c.slots.Reset()
	c.order = arena.NewList()
	if n > 0 {
		c.logger.Debug("cache cleared", "dropped", n)
	}
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the demo.
func (c *RecencyCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]K, 0, len(c.items))
	for i := c.order.Back(); i != arena.None; i = c.slots.Prev(i) {
		out = append(out, c.slots.Value(i).Key)
	}
	return out
}

// Stats returns a snapshot of the cache counters.
func (c *RecencyCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *RecencyCache[K, V]) evictIfNeededLocked() {
	for len(c.items) > c.capacity {
		e := c.deleteLocked(c.order.Front())
		c.stats.Evictions++
		c.logger.Debug("evicted entry", "key", e.Key, "size", len(c.items))
	}
}

func (c *RecencyCache[K, V]) deleteLocked(i int) Entry[K, V] {
	e := c.slots.Remove(&c.order, i)
	delete(c.items, e.Key)
	return e
}
