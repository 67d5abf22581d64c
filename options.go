package primesieve

import (
	"log/slog"
	"time"

	"github.com/hupe1980/primesieve/codec"
	"github.com/hupe1980/primesieve/internal/resource"
	"github.com/hupe1980/primesieve/internal/sieve"
)

// DefaultWindowBytes is the default ring size. The window spans 16 integers
// per byte.
const DefaultWindowBytes = sieve.DefaultWindowBytes

// MaxBound is the largest supported bound.
const MaxBound uint64 = sieve.MaxBound

// ResourceLimits bounds what the runs of one Sieve may consume together.
// Zero fields are unlimited, except MaxConcurrentRuns which defaults to 1
// once limits are configured.
type ResourceLimits = resource.Config

type options struct {
	windowBytes      int
	heapCapacity     int
	checkpointEvery  uint64
	progressInterval time.Duration
	logger           *Logger
	metricsCollector MetricsCollector
	limits           *ResourceLimits
	codec            codec.Codec
}

// Option configures a Sieve.
type Option func(*options)

// WithWindowBytes sets the ring size in bytes. It must be a power of two;
// New reports a *WindowSizeError otherwise.
//
// The ring should fit the first or second level cache. Results do not depend
// on the size.
func WithWindowBytes(n int) Option {
	return func(o *options) {
		o.windowBytes = n
	}
}

// WithHeapCapacity fixes the wheel heap capacity (sentinel included).
// By default it is derived from an upper bound on the number of primes below
// sqrt(N). A capacity that is too small makes runs fail with *CapacityError.
func WithHeapCapacity(n int) Option {
	return func(o *options) {
		o.heapCapacity = n
	}
}

// WithCheckpointEvery sets how many odd candidates pass between progress
// checkpoints. Zero disables progress reporting.
func WithCheckpointEvery(n uint64) Option {
	return func(o *options) {
		o.checkpointEvery = n
	}
}

// WithProgressInterval enables progress logging at info level, at most once
// per interval.
//
//	s, _ := primesieve.New(
//	    primesieve.WithLogLevel(slog.LevelInfo),
//	    primesieve.WithProgressInterval(5*time.Second),
//	)
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &primesieve.BasicMetricsCollector{}
//	s, _ := primesieve.New(primesieve.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceLimits caps memory, parallel runs and export bandwidth for all
// operations of the Sieve.
func WithResourceLimits(limits ResourceLimits) Option {
	return func(o *options) {
		o.limits = &limits
	}
}

// WithCodec configures the codec used by Export.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		windowBytes:      DefaultWindowBytes,
		checkpointEvery:  sieve.DefaultCheckpointEvery,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
