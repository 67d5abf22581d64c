// Package queue implements the wheel heap of the sieve: a fixed-capacity,
// array-backed min-heap of WheelEntry values ordered by NextHit.
//
// A sentinel entry whose NextHit is the largest uint64 is pushed at
// construction and never removed, so PeekMin is defined even when no prime is
// tracked yet. Inserting beyond the configured capacity fails with
// ErrCapacityExceeded rather than growing.
package queue
