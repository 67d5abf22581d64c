// Package reference contains straightforward prime counters used to check the
// cache-resident sieve: trial division, a plain O(N) sieve of Eratosthenes and
// a two-pass segmented sieve that first collects the primes up to sqrt(N) and
// then sieves fixed-size segments with them.
//
// They favor obviousness over speed and are meant for tests and the CLI
// verify command.
package reference
