package primesieve

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/hupe1980/primesieve/internal/primemath"
	"github.com/hupe1980/primesieve/internal/resource"
	"github.com/hupe1980/primesieve/internal/sieve"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Result is the outcome of a run: the bound, the number of primes up to the
// last classified value and the work statistics.
type Result = sieve.Result

// Stats describes the work done by one run.
type Stats = sieve.Stats

// Milestone is the prime count at a power of ten.
type Milestone struct {
	Bound uint64
	Count uint64
}

// Sieve runs prime sieves with a fixed configuration. It is safe for
// concurrent use: every call builds its own engine, and calls share only
// the resource limits.
type Sieve struct {
	opts options
	res  *resource.Controller // nil if unlimited
}

// New creates a Sieve.
func New(optFns ...Option) (*Sieve, error) {
	o := applyOptions(optFns)

	cfg := sieve.Config{WindowBytes: o.windowBytes, HeapCapacity: o.heapCapacity}
	if err := cfg.Validate(); err != nil {
		return nil, translateError(err)
	}

	s := &Sieve{opts: o}
	if o.limits != nil {
		s.res = resource.NewController(*o.limits)
	}
	return s, nil
}

// Count returns the number of primes <= n using a Sieve built from opts.
func Count(ctx context.Context, n uint64, opts ...Option) (uint64, error) {
	s, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return s.Count(ctx, n)
}

// Count returns the number of primes <= n.
func (s *Sieve) Count(ctx context.Context, n uint64) (uint64, error) {
	res, err := s.runObserved(ctx, n, nil)
	if err != nil {
		return 0, translateError(err)
	}
	return res.Count, nil
}

// Run sieves up to n. If emit is non-nil it receives every prime in
// increasing order; an error from emit stops the run and is returned
// unchanged.
//
// When ctx ends the run early, Run returns the partial Result (Reached tells
// how far it got) and an error matching ErrCanceled and ctx.Err().
func (s *Sieve) Run(ctx context.Context, n uint64, emit func(p uint64) error) (Result, error) {
	res, err := s.runObserved(ctx, n, emit)
	return res, translateError(err)
}

var errStopEnumerate = errors.New("enumeration stopped")

// Enumerate yields the primes <= n in increasing order. A failed run yields
// a final (0, err) pair. Breaking out of the loop stops the sieve.
func (s *Sieve) Enumerate(ctx context.Context, n uint64) iter.Seq2[uint64, error] {
	return func(yield func(uint64, error) bool) {
		_, err := s.runObserved(ctx, n, func(p uint64) error {
			if !yield(p, nil) {
				return errStopEnumerate
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopEnumerate) {
			yield(0, translateError(err))
		}
	}
}

// Collect returns the primes <= n as a PrimeSet.
func (s *Sieve) Collect(ctx context.Context, n uint64) (*PrimeSet, error) {
	set, err := s.collect(ctx, n)
	return set, translateError(err)
}

func (s *Sieve) collect(ctx context.Context, n uint64) (*PrimeSet, error) {
	set := newPrimeSet(n)
	batch := make([]uint64, 0, collectBatch)

	_, err := s.runObserved(ctx, n, func(p uint64) error {
		batch = append(batch, p)
		if len(batch) == cap(batch) {
			set.addMany(batch)
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	set.addMany(batch)
	set.optimize()
	return set, nil
}

const collectBatch = 4096

// CountMany counts primes for several bounds in parallel, one engine per
// bound. The returned counts are in the order of bounds. Parallelism is
// capped by GOMAXPROCS and, if configured, by ResourceLimits.MaxConcurrentRuns.
func (s *Sieve) CountMany(ctx context.Context, bounds []uint64) ([]uint64, error) {
	start := time.Now()
	counts := make([]uint64, len(bounds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var failed atomic.Int64
	for i, n := range bounds {
		g.Go(func() error {
			res, err := s.runObserved(gctx, n, nil)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("bound %d: %w", n, err)
			}
			counts[i] = res.Count
			return nil
		})
	}

	err := g.Wait()
	s.opts.logger.LogBatch(ctx, len(bounds), int(failed.Load()), time.Since(start))
	if err != nil {
		return nil, translateError(err)
	}
	return counts, nil
}

// Milestones returns pi(10^k) for every power of ten 10 <= 10^k <= n,
// computed in a single run.
func (s *Sieve) Milestones(ctx context.Context, n uint64) ([]Milestone, error) {
	var (
		out  []Milestone
		next uint64 = 10
		seen uint64
	)

	res, err := s.runObserved(ctx, n, func(p uint64) error {
		for next <= n && p > next {
			out = append(out, Milestone{Bound: next, Count: seen})
			next = primemath.SatMul(next, 10)
		}
		seen++
		return nil
	})
	if err != nil {
		return out, translateError(err)
	}
	for next <= n {
		out = append(out, Milestone{Bound: next, Count: res.Count})
		next = primemath.SatMul(next, 10)
	}
	return out, nil
}

// runObserved wraps run with metrics and logging. Errors are untranslated.
func (s *Sieve) runObserved(ctx context.Context, n uint64, emit func(uint64) error) (Result, error) {
	start := time.Now()
	res, err := s.run(ctx, n, emit)
	elapsed := time.Since(start)

	observed := err
	if errors.Is(err, errStopEnumerate) {
		observed = nil
	}
	s.opts.metricsCollector.RecordRun(n, res.Count, elapsed, observed)
	s.opts.logger.LogRun(ctx, n, res, elapsed, observed)
	return res, err
}

func (s *Sieve) run(ctx context.Context, n uint64, emit func(uint64) error) (Result, error) {
	cfg := s.engineConfig(ctx, n)
	if err := cfg.Validate(); err != nil {
		return Result{Bound: n}, err
	}

	if err := s.res.AcquireRun(ctx); err != nil {
		return Result{Bound: n}, fmt.Errorf("%w waiting for a run slot: %w", sieve.ErrCanceled, err)
	}
	defer s.res.ReleaseRun()

	mem := sieve.MemoryFootprint(cfg)
	if err := s.res.AcquireMemory(mem); err != nil {
		return Result{Bound: n}, fmt.Errorf("bound %d needs %d bytes (limit %d): %w", n, mem, s.res.MemoryLimit(), err)
	}
	defer s.res.ReleaseMemory(mem)

	eng, err := sieve.New(cfg)
	if err != nil {
		return Result{Bound: n}, err
	}
	return eng.Run(ctx, emit)
}

func (s *Sieve) engineConfig(ctx context.Context, n uint64) sieve.Config {
	cfg := sieve.Config{
		Bound:        n,
		WindowBytes:  s.opts.windowBytes,
		HeapCapacity: s.opts.heapCapacity,
	}
	if s.opts.progressInterval > 0 && s.opts.checkpointEvery > 0 {
		logger := s.opts.logger.WithBound(n)
		every := &rate.Sometimes{Interval: s.opts.progressInterval}
		cfg.CheckpointEvery = s.opts.checkpointEvery
		cfg.OnCheckpoint = func(cp sieve.Checkpoint) {
			every.Do(func() {
				logger.LogProgress(ctx, n, cp.X, cp.Count, cp.HeapLen)
			})
		}
	}
	return cfg
}
