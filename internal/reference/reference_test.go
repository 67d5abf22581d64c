package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownCounts(t *testing.T) {
	known := map[uint64]uint64{
		0:      0,
		1:      0,
		2:      1,
		3:      2,
		10:     4,
		100:    25,
		1000:   168,
		10000:  1229,
		100000: 9592,
	}
	for n, want := range known {
		assert.Equal(t, want, uint64(len(Primes(n))), "Primes(%d)", n)
		assert.Equal(t, want, SegmentedCount(n), "SegmentedCount(%d)", n)
		if n <= 10000 {
			assert.Equal(t, want, TrialDivisionCount(n), "TrialDivisionCount(%d)", n)
		}
	}
}

func TestSegmentedMatchesPlain(t *testing.T) {
	for n := uint64(0); n < 3000; n += 7 {
		assert.Equal(t, uint64(len(Primes(n))), SegmentedCount(n), "n=%d", n)
	}
	// Crosses several segments of the minimum width.
	assert.Equal(t, uint64(len(Primes(50_000))), SegmentedCount(50_000))
}

func TestIsPrime(t *testing.T) {
	assert.False(t, IsPrime(0))
	assert.False(t, IsPrime(1))
	assert.True(t, IsPrime(2))
	assert.True(t, IsPrime(3))
	assert.False(t, IsPrime(4))
	assert.False(t, IsPrime(9))
	assert.True(t, IsPrime(7919))
	assert.True(t, IsPrime(4294967291))
	assert.False(t, IsPrime(4294967291*3))
}
