package primesieve

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// PrimeSet is an immutable set of primes up to a bound, stored as a
// compressed 64-bit roaring bitmap.
type PrimeSet struct {
	bound uint64
	bm    *roaring64.Bitmap
}

func newPrimeSet(bound uint64) *PrimeSet {
	return &PrimeSet{bound: bound, bm: roaring64.New()}
}

func (s *PrimeSet) addMany(ps []uint64) {
	if len(ps) > 0 {
		s.bm.AddMany(ps)
	}
}

func (s *PrimeSet) optimize() {
	s.bm.RunOptimize()
}

// Bound returns the bound the set was sieved to.
func (s *PrimeSet) Bound() uint64 { return s.bound }

// Len returns the number of primes in the set, pi(Bound).
func (s *PrimeSet) Len() uint64 { return s.bm.GetCardinality() }

// Contains reports whether x is a prime <= Bound.
func (s *PrimeSet) Contains(x uint64) bool { return s.bm.Contains(x) }

// Pi returns the number of primes <= x, for x <= Bound.
func (s *PrimeSet) Pi(x uint64) uint64 { return s.bm.Rank(x) }

// Nth returns the k-th prime, counting from 1. ok is false when k is zero
// or larger than Len.
func (s *PrimeSet) Nth(k uint64) (p uint64, ok bool) {
	if k == 0 || k > s.Len() {
		return 0, false
	}
	p, err := s.bm.Select(k - 1)
	if err != nil {
		return 0, false
	}
	return p, true
}

// Max returns the largest prime in the set.
func (s *PrimeSet) Max() (uint64, bool) {
	if s.bm.IsEmpty() {
		return 0, false
	}
	return s.bm.Maximum(), true
}

// All yields the primes in increasing order.
func (s *PrimeSet) All() iter.Seq[uint64] {
	return s.Range(0, s.bound)
}

// Range yields the primes in [lo, hi] in increasing order.
func (s *PrimeSet) Range(lo, hi uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it := s.bm.Iterator()
		it.AdvanceIfNeeded(lo)
		for it.HasNext() {
			p := it.Next()
			if p > hi || !yield(p) {
				return
			}
		}
	}
}

// SizeInBytes returns the in-memory size of the bitmap.
func (s *PrimeSet) SizeInBytes() uint64 { return s.bm.GetSizeInBytes() }

// MarshalBinary implements encoding.BinaryMarshaler. The bound is not part
// of the encoding; the export header carries it.
func (s *PrimeSet) MarshalBinary() ([]byte, error) {
	return s.bm.MarshalBinary()
}

func unmarshalPrimeSet(bound uint64, data []byte) (*PrimeSet, error) {
	s := newPrimeSet(bound)
	if err := s.bm.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}
