// Package sieve implements the cache-resident incremental sieve of
// Eratosthenes.
//
// The engine scans odd candidates x = 3, 5, 7, ... and classifies each one with
// two structures it owns exclusively:
//
//   - a queue.MinHeap of wheel entries, one per prime p <= sqrt(N), keyed by the
//     next odd multiple of p still to be reached;
//   - a ringbits.Ring holding composite flags for the window [x, x+W).
//
// When the heap minimum equals x (a hit), every entry sitting on x is advanced
// through the current window, flagging each multiple it passes, and put back
// for a later window or retired once it passes N. Otherwise the flag for x
// decides: clear means prime, set means composite. Either way the flag is
// consumed so the ring slot can serve the next window. Memory stays at
// B bytes of ring plus 16 bytes per sieving prime, independent of N.
package sieve
