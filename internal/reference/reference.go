package reference

import (
	"github.com/hupe1980/primesieve/internal/primemath"
)

// IsPrime reports whether n is prime by trial division.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := uint64(3); d <= n/d; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// TrialDivisionCount counts primes <= n by testing every candidate.
func TrialDivisionCount(n uint64) uint64 {
	var count uint64
	for i := uint64(2); i <= n; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}

// Primes returns all primes <= n using a full-size sieve.
func Primes(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	composite := make([]bool, n+1)
	primes := make([]uint64, 0, primemath.PiUpperBound(n))
	for i := uint64(2); i <= n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return primes
}

// SegmentedCount counts primes <= n with a two-pass segmented sieve.
// Segments are sqrt(n) wide, at least segmentMin.
func SegmentedCount(n uint64) uint64 {
	const segmentMin = 1 << 12

	if n < 2 {
		return 0
	}
	limit := primemath.Isqrt(n)
	small := Primes(limit)
	count := uint64(len(small))
	if limit >= n {
		return count
	}

	size := max(limit, segmentMin)
	mark := make([]bool, size)
	for low := limit + 1; low <= n; low += size {
		high := min(low+size-1, n) // inclusive
		clear(mark)
		for _, p := range small {
			// First multiple of p in [low, high], never below p*p.
			start := max(p*p, (low+p-1)/p*p)
			for j := start; j <= high; j += p {
				mark[j-low] = true
			}
		}
		for i := low; i <= high; i++ {
			if !mark[i-low] {
				count++
			}
		}
		if high == n {
			break
		}
	}
	return count
}
