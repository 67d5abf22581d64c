package primesieve

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBound parses a decimal bound. Underscores may separate digit groups,
// and a power of ten may be written as 1eK (for example 1e9).
// Negative, non-numeric and out-of-range input fails with ErrInvalidBound.
func ParseBound(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidBound)
	}
	if s[0] == '-' {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidBound, s)
	}

	if mant, exp, ok := strings.Cut(strings.ToLower(s), "e"); ok {
		return parseScientific(s, mant, exp)
	}

	n, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBound, s, err)
	}
	if n > MaxBound {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrInvalidBound, n, MaxBound)
	}
	return n, nil
}

func parseScientific(s, mant, exp string) (uint64, error) {
	m, err := strconv.ParseUint(mant, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBound, s, err)
	}
	k, err := strconv.ParseUint(exp, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBound, s, err)
	}
	n := m
	for range k {
		if n > MaxBound/10 {
			return 0, fmt.Errorf("%w: %q exceeds %d", ErrInvalidBound, s, MaxBound)
		}
		n *= 10
	}
	return n, nil
}
