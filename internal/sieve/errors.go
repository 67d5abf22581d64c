package sieve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBound is returned for bounds above MaxBound.
	ErrInvalidBound = errors.New("invalid bound")

	// ErrInvalidConfig is returned for inconsistent engine settings.
	ErrInvalidConfig = errors.New("invalid sieve config")

	// ErrCanceled is returned when the context ends a scan early.
	// The accompanying Result holds the partial count.
	ErrCanceled = errors.New("sieve canceled")
)

// CapacityError reports that the wheel heap could not track a new prime.
type CapacityError struct {
	Capacity  int    // configured capacity, sentinel included
	Prime     uint64 // prime that could not be tracked
	Threshold uint64 // primes below this value need an entry
	cause     error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("wheel heap capacity %d exhausted at prime %d (primes below %d must be tracked, need at least %d)",
		e.Capacity, e.Prime, e.Threshold, e.Capacity+1)
}

func (e *CapacityError) Unwrap() error { return e.cause }

// WindowSizeError reports a ring size that is not a positive power of two.
type WindowSizeError struct {
	Bytes int
}

func (e *WindowSizeError) Error() string {
	return fmt.Sprintf("window size %d bytes is not a positive power of two", e.Bytes)
}
