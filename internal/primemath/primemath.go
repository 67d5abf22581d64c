package primemath

import (
	"math"
	"math/bits"
)

// Saturated is the value returned by the saturating helpers on overflow.
// It doubles as the "never hits" position of the heap sentinel.
const Saturated = math.MaxUint64

// SatAdd returns a+b, clamped to Saturated instead of wrapping.
func SatAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return Saturated
	}
	return sum
}

// SatMul returns a*b, clamped to Saturated instead of wrapping.
func SatMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return Saturated
	}
	return lo
}

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	// Float estimate, then correct the last ulp in both directions.
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && squareExceeds(r, n) {
		r--
	}
	for !squareExceeds(r+1, n) {
		r++
	}
	return r
}

func squareExceeds(r, n uint64) bool {
	hi, lo := bits.Mul64(r, r)
	return hi != 0 || lo > n
}

// PiUpperBound returns an upper bound on the number of primes <= x.
//
// Uses Dusart's bound pi(x) < 1.25506 x / ln x (x > 1), rounded up.
func PiUpperBound(x uint64) uint64 {
	if x < 2 {
		return 0
	}
	f := float64(x)
	return uint64(math.Ceil(1.25506*f/math.Log(f))) + 1
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
