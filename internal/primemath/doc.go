// Package primemath holds the small integer helpers shared by the sieve:
// integer square roots, saturating uint64 arithmetic and an upper bound on
// the prime-counting function used to size the wheel heap.
package primemath
