package sieve

import (
	"context"
	"fmt"

	"github.com/hupe1980/primesieve/internal/primemath"
	"github.com/hupe1980/primesieve/internal/queue"
	"github.com/hupe1980/primesieve/internal/ringbits"
)

// Stats describes the work done by one scan.
type Stats struct {
	Candidates     uint64 // odd values examined
	HitPhases      uint64 // times the heap minimum met the scan position
	MarksSet       uint64 // composite flags written into the ring
	EntriesSeeded  uint64 // wheel entries created
	EntriesRetired uint64 // wheel entries dropped past the bound
	MaxHeapLen     int
	WindowBytes    int
	HeapCapacity   int
}

// Result is the outcome of a scan.
type Result struct {
	Bound uint64
	Count uint64 // primes <= Reached (<= Bound once complete)

	// Reached is the last value classified. It equals the largest odd value
	// <= Bound for a complete scan and is smaller after cancellation.
	Reached uint64
	Stats   Stats
}

// Engine is a single-threaded sieve instance. It is not safe for concurrent
// use; create one engine per goroutine.
type Engine struct {
	cfg       Config
	ring      *ringbits.Ring
	heap      *queue.MinHeap
	end       uint64 // exclusive target, Bound+1
	threshold uint64

	// retainHitFlag skips the flag release after a hit phase. Tests only.
	retainHitFlag bool
}

// New creates an engine for cfg.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HeapCapacity == 0 {
		cfg.HeapCapacity = HeapCapacityFor(cfg.Bound)
	}

	ring, err := ringbits.New(cfg.WindowBytes)
	if err != nil {
		return nil, &WindowSizeError{Bytes: cfg.WindowBytes}
	}

	return &Engine{
		cfg:       cfg,
		ring:      ring,
		heap:      queue.NewMinHeap(cfg.HeapCapacity),
		end:       cfg.Bound + 1,
		threshold: Threshold(cfg.Bound),
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Reset re-arms the engine for another scan, optionally with a new bound.
// The heap keeps its capacity.
func (e *Engine) Reset(bound uint64) error {
	if bound > MaxBound {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidBound, bound, uint64(MaxBound))
	}
	e.cfg.Bound = bound
	e.end = bound + 1
	e.threshold = Threshold(bound)
	e.ring.Init()
	e.heap.Reset()
	return nil
}

// Run scans all candidates up to the bound. If emit is non-nil it receives
// every prime in increasing order; an emit error stops the scan and is
// returned as is.
//
// ctx is polled once per candidate. On cancellation Run returns the partial
// Result together with an error wrapping ErrCanceled and ctx.Err().
func (e *Engine) Run(ctx context.Context, emit func(p uint64) error) (Result, error) {
	var (
		n     = e.cfg.Bound
		w     = e.ring.Width()
		end   = e.end
		ring  = e.ring
		heap  = e.heap
		done  = ctx.Done()
		every = e.cfg.CheckpointEvery
		tick  uint64
		count uint64
		x     uint64 = 3
	)

	stats := Stats{
		WindowBytes:  e.ring.Bytes(),
		HeapCapacity: e.heap.Cap(),
	}
	result := func(reached uint64) Result {
		stats.Candidates = 0
		if reached >= 3 {
			stats.Candidates = (reached-3)/2 + 1
		}
		return Result{Bound: n, Count: count, Reached: reached, Stats: stats}
	}

	if n < 2 {
		return result(n), nil
	}

	// 2 is the only even prime; the loop below never sees it.
	count = 1
	if emit != nil {
		if err := emit(2); err != nil {
			return result(2), err
		}
	}

	for x <= n {
		top := heap.PeekMin()
		if top.NextHit == x {
			// x is composite. Advance every entry sitting on x through the
			// window [x, next) and queue it for the following window.
			next := min(end, primemath.SatAdd(x, w))
			stats.HitPhases++
			for top.NextHit == x {
				top = heap.ExtractMin()
				for {
					top.NextHit = primemath.SatAdd(top.NextHit, top.Stride)
					if top.NextHit >= next {
						break
					}
					ring.Set(top.NextHit)
					stats.MarksSet++
				}
				if top.NextHit < end {
					if err := heap.Insert(top); err != nil {
						return result(x), err
					}
				} else {
					stats.EntriesRetired++
				}
				top = heap.PeekMin()
			}
			// An earlier window may have flagged x as well.
			if !e.retainHitFlag {
				ring.Clear(x)
			}
		} else if !ring.Get(x) {
			count++
			if emit != nil {
				if err := emit(x); err != nil {
					return result(x), err
				}
			}
			if x < e.threshold {
				entry := queue.WheelEntry{NextHit: primemath.SatMul(x, x), Stride: 2 * x}
				if err := heap.Insert(entry); err != nil {
					return result(x), &CapacityError{
						Capacity:  heap.Cap(),
						Prime:     x,
						Threshold: e.threshold,
						cause:     err,
					}
				}
				stats.EntriesSeeded++
				stats.MaxHeapLen = max(stats.MaxHeapLen, heap.Len())
			}
		} else {
			ring.Clear(x)
		}

		if done != nil {
			select {
			case <-done:
				return result(x), fmt.Errorf("%w at %d: %w", ErrCanceled, x, ctx.Err())
			default:
			}
		}

		if every != 0 {
			tick++
			if tick == every {
				tick = 0
				if e.cfg.OnCheckpoint != nil {
					e.cfg.OnCheckpoint(Checkpoint{X: x, Count: count, HeapLen: heap.Len()})
				}
			}
		}

		x += 2
	}

	return result(lastOdd(n)), nil
}

// Count runs a scan without emitting primes.
func (e *Engine) Count(ctx context.Context) (uint64, error) {
	res, err := e.Run(ctx, nil)
	return res.Count, err
}

func lastOdd(n uint64) uint64 {
	if n < 3 {
		return n
	}
	if n&1 == 0 {
		return n - 1
	}
	return n
}
