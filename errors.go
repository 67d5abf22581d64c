package primesieve

import (
	"errors"
	"fmt"

	"github.com/hupe1980/primesieve/blobstore"
	"github.com/hupe1980/primesieve/internal/resource"
	"github.com/hupe1980/primesieve/internal/sieve"
)

var (
	// ErrInvalidBound is returned for bounds that are negative, non-numeric
	// or above MaxBound.
	ErrInvalidBound = errors.New("invalid bound")

	// ErrCanceled is returned when the context ends a run early.
	ErrCanceled = errors.New("canceled")

	// ErrMemoryLimitExceeded is returned when a run does not fit the
	// configured memory budget.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrNotFound is returned when an exported prime set does not exist.
	ErrNotFound = errors.New("prime set not found")

	// ErrCorruptPrimeSet is returned when an exported prime set fails
	// validation.
	ErrCorruptPrimeSet = errors.New("corrupt prime set")
)

// CapacityError reports a wheel heap too small for the bound.
//
// The original underlying error can be accessed via errors.Unwrap.
type CapacityError struct {
	Capacity  int
	Prime     uint64
	Threshold uint64
	cause     error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("heap capacity %d too small: prime %d needs a wheel entry (all primes below %d do)",
		e.Capacity, e.Prime, e.Threshold)
}

func (e *CapacityError) Unwrap() error { return e.cause }

// WindowSizeError reports a window size that is not a power of two.
//
// The original underlying error can be accessed via errors.Unwrap.
type WindowSizeError struct {
	Bytes int
	cause error
}

func (e *WindowSizeError) Error() string {
	return fmt.Sprintf("invalid window size: %d bytes (must be a positive power of two)", e.Bytes)
}

func (e *WindowSizeError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *sieve.CapacityError
	if errors.As(err, &ce) {
		return &CapacityError{Capacity: ce.Capacity, Prime: ce.Prime, Threshold: ce.Threshold, cause: err}
	}
	var we *sieve.WindowSizeError
	if errors.As(err, &we) {
		return &WindowSizeError{Bytes: we.Bytes, cause: err}
	}

	switch {
	case errors.Is(err, sieve.ErrInvalidBound):
		return fmt.Errorf("%w: %w", ErrInvalidBound, err)
	case errors.Is(err, sieve.ErrCanceled):
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	case errors.Is(err, blobstore.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
