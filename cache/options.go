package cache

import "log/slog"

// DefaultCapacity bounds a cache constructed without WithCapacity.
const DefaultCapacity = 1000

type options struct {
	capacity int
	logger   *slog.Logger
}

// Option configures a cache at construction time.
type Option func(*options)

// WithCapacity sets the maximum number of live entries.
// A capacity <= 0 yields a cache that retains nothing.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger used for eviction and clear events.
// Events are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(policy string, opts []Option) options {
	o := options{
		capacity: DefaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("policy", policy, "capacity", o.capacity)
	return o
}

// initialSlots caps the arena preallocation so a huge bound does not
// allocate up front.
func (o options) initialSlots() int {
	return max(0, min(o.capacity, 1024))
}
