package cache

// Entry is a key/value pair returned by bulk consumes.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Stats is a point-in-time snapshot of a cache's counters.
type Stats struct {
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups on an absent key or an empty cache.
	Misses uint64
	// Evictions counts entries dropped to stay within capacity.
	// Explicit consumes and Clear are not evictions.
	Evictions uint64
}

// HitRatio returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s *Stats) record(found bool) {
	if found {
		s.Hits++
		return
	}
	s.Misses++
}
