package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/kushalsai-01/gocache/cache"
)

type config struct {
	capacity int
	workers  int
	ops      int
	verbose  bool
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.capacity, "capacity", 3, "capacity of each cache")
	flag.IntVar(&cfg.workers, "workers", 8, "goroutines in the stress phase")
	flag.IntVar(&cfg.ops, "ops", 10000, "operations per worker in the stress phase")
	flag.BoolVar(&cfg.verbose, "v", false, "log evictions at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	// Signal-aware context is the root of ownership for the stress workers.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("gocache demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	if cfg.capacity < 2 {
		return fmt.Errorf("invalid -capacity %d: the walkthrough needs at least 2", cfg.capacity)
	}
	if cfg.workers <= 0 || cfg.ops <= 0 {
		return fmt.Errorf("invalid stress settings: workers=%d ops=%d", cfg.workers, cfg.ops)
	}

	logger.Info("gocache demo starting", "capacity", cfg.capacity, "workers", cfg.workers, "ops", cfg.ops)

	walkRecency(cfg.capacity, logger)
	walkSequence(cfg.capacity, logger)
	walkFrequency(cfg.capacity, logger)

	if err := stress(ctx, cfg, logger); err != nil {
		return fmt.Errorf("stress phase: %w", err)
	}

	fmt.Println("Done.")
	return nil
}

// walkRecency fills the LRU cache one past capacity after refreshing the
// oldest key, so the second-oldest is the victim.
func walkRecency(capacity int, logger *slog.Logger) {
	c := cache.NewRecency[string, int](cache.WithCapacity(capacity), cache.WithLogger(logger))
	log := logger.With("policy", "lru")

	for i := range capacity {
		c.Produce(fmt.Sprintf("k%d", i), i)
	}
	c.Produce("k0", 100) // k0 -> MRU, k1 becomes LRU
	c.Produce("new", -1)

	log.Info("keys after eviction (MRU->LRU)", "keys", c.Keys())
	if _, ok := c.Consume("k1"); !ok {
		log.Info("consume k1: missing (evicted as LRU)")
	}
	if v, ok := c.Consume("k0"); ok {
		log.Info("consume k0", "value", v, "len", c.Len())
	}
	log.Info("drain", "entries", c.ConsumeN(c.Cap()))
}

// walkSequence shows that reads never save a value from FIFO eviction.
func walkSequence(capacity int, logger *slog.Logger) {
	c := cache.NewSequence[string](cache.WithCapacity(capacity), cache.WithLogger(logger))
	log := logger.With("policy", "fifo")

	for i := range capacity + 1 {
		c.Produce(fmt.Sprintf("v%d", i))
	}
	if v, ok := c.Consume(); ok {
		log.Info("oldest surviving value", "value", v)
	}
	log.Info("drain", "values", c.ConsumeN(capacity), "stats", c.Stats())
}

// walkFrequency touches every key except the last, so the untouched one is
// evicted when a new key arrives.
func walkFrequency(capacity int, logger *slog.Logger) {
	c := cache.NewFrequency[string, int](cache.WithCapacity(capacity), cache.WithLogger(logger))
	log := logger.With("policy", "lfu")

	for i := range capacity {
		c.Produce(fmt.Sprintf("k%d", i), i)
	}
	for i := range capacity - 1 {
		c.Consume(fmt.Sprintf("k%d", i))
	}
	cold := fmt.Sprintf("k%d", capacity-1)
	c.Produce("new", -1)

	if _, ok := c.Frequency(cold); !ok {
		log.Info("cold key evicted", "key", cold)
	}
	freq, _ := c.Frequency("k0")
	log.Info("hot key survives", "key", "k0", "frequency", freq, "len", c.Len())
}

// stress hammers one instance of each cache from several goroutines.
func stress(ctx context.Context, cfg config, logger *slog.Logger) error {
	lru := cache.NewRecency[int, int](cache.WithCapacity(cfg.capacity))
	fifo := cache.NewSequence[int](cache.WithCapacity(cfg.capacity))
	lfu := cache.NewFrequency[int, int](cache.WithCapacity(cfg.capacity))

	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers)

	for w := range cfg.workers {
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w)))
			keys := cfg.capacity * 4
			for i := range cfg.ops {
				if i%256 == 0 {
					if err := egCtx.Err(); err != nil {
						return err
					}
				}
				key := rng.Intn(keys)
				switch rng.Intn(4) {
				case 0:
					lru.Consume(key)
					lfu.Consume(key)
					fifo.Consume()
				case 1:
					lru.ConsumeOldest()
					fifo.ConsumeN(2)
				default:
					lru.Produce(key, i)
					lfu.Produce(key, i)
					fifo.Produce(i)
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Warn("stress phase interrupted")
		err = nil
	}
	if err != nil {
		return err
	}

	logger.Info("stress phase finished",
		"elapsed", time.Since(start),
		"lru_len", lru.Len(), "lru_stats", lru.Stats(),
		"fifo_len", fifo.Len(), "fifo_stats", fifo.Stats(),
		"lfu_len", lfu.Len(), "lfu_stats", lfu.Stats(),
	)
	return nil
}
