// Package ringbits provides the cyclic composite-flag buffer used by the sieve.
//
// A Ring of B bytes covers a window of W = 16·B consecutive integers. Each byte
// holds the flags of the 8 odd integers of a 16-integer block, so even
// positions have no storage at all:
//
//	byte index = (i / 16) mod B
//	bit index  = (i / 2)  mod 8
//
// Addressing depends only on i mod W, which lets the same bytes serve every
// window as the scan advances. B must be a power of two; pick it so the buffer
// stays inside the first- or second-level CPU cache.
package ringbits
