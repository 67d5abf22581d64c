package primesieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBound(t *testing.T) {
	valid := map[string]uint64{
		"0":                    0,
		"100":                  100,
		" 100000000 ":          100000000,
		"1_000_000":            1000000,
		"1e9":                  1000000000,
		"5E3":                  5000,
		"1e19":                 10000000000000000000,
		"18446744073709551614": MaxBound,
	}
	for in, want := range valid {
		got, err := ParseBound(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "-1", "abc", "12x", "1e", "1e20", "2e19", "18446744073709551615", "99999999999999999999"} {
		_, err := ParseBound(in)
		assert.ErrorIs(t, err, ErrInvalidBound, in)
	}
}
