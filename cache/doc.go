// Package cache implements bounded, in-process containers with three
// eviction policies.
//
//   - RecencyCache evicts the least-recently produced key (LRU).
//   - SequenceCache evicts the oldest inserted value regardless of access (FIFO).
//   - FrequencyCache evicts the least-frequently accessed key, oldest first
//     within a frequency (LFU).
//
// Every cache is generic, safe for concurrent use through a single mutex per
// instance, and reports absence with a comma-ok bool instead of a zero value.
//
// Consume has different meanings per policy. On RecencyCache and
// SequenceCache it removes what it returns. On FrequencyCache it only reads
// the value and counts an access; the entry stays cached.
//
// Entries are held in an index-linked slot arena (see internal/arena), and
// keys map to slot indices, so no operation scans.
package cache
