package sieve

import (
	"fmt"
	"math"

	"github.com/hupe1980/primesieve/internal/primemath"
)

const (
	// DefaultWindowBytes sizes the ring for a typical 64 KiB first/second
	// level cache budget. The window then spans 1 MiB of integers.
	DefaultWindowBytes = 1 << 16

	// MaxBound is the largest supported bound. The scan position advances in
	// steps of two and must not wrap past the bound.
	MaxBound = math.MaxUint64 - 1

	// DefaultCheckpointEvery is the number of candidates between checkpoints.
	DefaultCheckpointEvery = 1 << 24
)

// Checkpoint is a snapshot of a running scan.
type Checkpoint struct {
	X       uint64 // last candidate examined
	Count   uint64 // primes <= X
	HeapLen int    // tracked sieving primes
}

// Config configures an Engine.
type Config struct {
	// Bound is the inclusive upper limit N.
	Bound uint64

	// WindowBytes is the ring size in bytes, a power of two.
	WindowBytes int

	// HeapCapacity is the wheel heap capacity including the sentinel.
	// Zero derives it from an upper bound on pi(sqrt(Bound)).
	HeapCapacity int

	// CheckpointEvery is the number of odd candidates between OnCheckpoint
	// calls. Zero disables checkpoints.
	CheckpointEvery uint64

	// OnCheckpoint, if set, observes the scan every CheckpointEvery candidates.
	OnCheckpoint func(Checkpoint)
}

// DefaultConfig returns a Config for bound with default sizing.
func DefaultConfig(bound uint64) Config {
	return Config{
		Bound:           bound,
		WindowBytes:     DefaultWindowBytes,
		CheckpointEvery: DefaultCheckpointEvery,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Bound > MaxBound {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidBound, c.Bound, uint64(MaxBound))
	}
	if !primemath.IsPowerOfTwo(c.WindowBytes) {
		return &WindowSizeError{Bytes: c.WindowBytes}
	}
	if c.HeapCapacity < 0 {
		return fmt.Errorf("%w: negative heap capacity %d", ErrInvalidConfig, c.HeapCapacity)
	}
	return nil
}

// Threshold returns T = isqrt(bound)+1: primes below T get wheel entries.
func Threshold(bound uint64) uint64 {
	return primemath.Isqrt(bound) + 1
}

// HeapCapacityFor returns a heap capacity sufficient for bound, sentinel
// included.
func HeapCapacityFor(bound uint64) int {
	return int(primemath.PiUpperBound(primemath.Isqrt(bound))) + 1
}

// MemoryFootprint estimates the bytes held by an engine for cfg.
func MemoryFootprint(cfg Config) int64 {
	capacity := cfg.HeapCapacity
	if capacity == 0 {
		capacity = HeapCapacityFor(cfg.Bound)
	}
	return int64(cfg.WindowBytes) + int64(capacity)*16
}
