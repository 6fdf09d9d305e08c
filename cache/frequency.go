package cache

import (
	"log/slog"
	"sync"

	"github.com/kushalsai-01/gocache/internal/arena"
)

// FrequencyCache is a concurrency-safe bounded map with LFU eviction.
//
// Keys sharing an access count live in one bucket, ordered by when they
// entered it. The victim is the front of the lowest non-empty bucket, so ties
// go to the key that has sat at that frequency the longest.
//
// Consume counts as an access and does not remove the entry.
type FrequencyCache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	items    map[K]*lfuEntry[V]
	buckets  map[int]*arena.List // frequency -> keys, oldest first
	keys     *arena.Arena[K]     // shared by all buckets
	minFreq  int

	stats  Stats
	logger *slog.Logger
}

type lfuEntry[V any] struct {
	value V
	freq  int
	slot  int
}

// NewFrequency constructs an empty LFU cache.
func NewFrequency[K comparable, V any](opts ...Option) *FrequencyCache[K, V] {
	o := buildOptions("lfu", opts)
	return &FrequencyCache[K, V]{
		capacity: o.capacity,
		items:    make(map[K]*lfuEntry[V], o.initialSlots()),
		buckets:  make(map[int]*arena.List),
		keys:     arena.New[K](o.initialSlots()),
		logger:   o.logger,
	}
}

// Produce inserts key at frequency 1, or overwrites an existing key and
// increments its frequency.
//
// Inserting a new key into a full cache first evicts the oldest key of the
// lowest frequency.
func (c *FrequencyCache[K, V]) Produce(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	if e, ok := c.items[key]; ok {
		e.value = value
		c.touchLocked(e)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictLocked()
	}

	c.items[key] = &lfuEntry[V]{
		value: value,
		freq:  1,
		slot:  c.keys.PushBack(c.bucketLocked(1), key),
	}
	c.minFreq = 1
}

// Consume returns the value for key and counts an access, moving the key to
// the next frequency. The entry is not removed.
// The bool is false if key is not cached.
func (c *FrequencyCache[K, V]) Consume(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	c.stats.record(ok)
	if !ok {
		var zero V
		return zero, false
	}
	c.touchLocked(e)
	return e.value, true
}

// Frequency returns the access count of key without counting an access.
func (c *FrequencyCache[K, V]) Frequency(key K) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return 0, false
	}
	return e.freq, true
}

// Len returns the number of cached entries.
func (c *FrequencyCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cap returns the configured capacity.
func (c *FrequencyCache[K, V]) Cap() int {
	return c.capacity
}

// Clear drops every entry and all frequency history. Counters are kept.
func (c *FrequencyCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	clear(c.items)
	clear(c.buckets)
	c.keys.Reset()
	c.minFreq = 0
	if n > 0 {
		c.logger.Debug("cache cleared", "dropped", n)
	}
}

// Stats returns a snapshot of the cache counters.
func (c *FrequencyCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// touchLocked moves e one frequency up.
func (c *FrequencyCache[K, V]) touchLocked(e *lfuEntry[V]) {
	from := c.buckets[e.freq]
	e.freq++
	c.keys.MoveToList(from, c.bucketLocked(e.freq), e.slot)

	if from.Len() == 0 {
		delete(c.buckets, e.freq-1)
		if c.minFreq == e.freq-1 {
			c.minFreq = e.freq
		}
	}
}

func (c *FrequencyCache[K, V]) evictLocked() {
	bucket, ok := c.buckets[c.minFreq]
	if !ok || bucket.Len() == 0 {
		return
	}
	key := c.keys.Remove(bucket, bucket.Front())
	if bucket.Len() == 0 {
		delete(c.buckets, c.minFreq)
	}
	delete(c.items, key)
	c.stats.Evictions++
	c.logger.Debug("evicted entry", "key", key, "frequency", c.minFreq, "size", len(c.items))
}

func (c *FrequencyCache[K, V]) bucketLocked(freq int) *arena.List {
	if b, ok := c.buckets[freq]; ok {
		return b
	}
	b := arena.NewList()
	c.buckets[freq] = &b
	return &b
}
