package primesieve

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/primesieve/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSieve(t testing.TB, opts ...Option) *Sieve {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestCount(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{10, 4},
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{100000, 9592},
		{1000000, 78498},
	}

	for _, tt := range tests {
		got, err := Count(t.Context(), tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "pi(%d)", tt.n)
	}
}

func TestCount_MatchesTrialDivision(t *testing.T) {
	s := newSieve(t, WithWindowBytes(4))
	for _, n := range []uint64{100, 1000, 10000} {
		got, err := s.Count(t.Context(), n)
		require.NoError(t, err)
		assert.Equal(t, reference.TrialDivisionCount(n), got)
	}
}

func TestCount_WindowIndependent(t *testing.T) {
	const n = 200000
	want := reference.SegmentedCount(n)
	for b := 1; b <= 4096; b <<= 1 {
		got, err := Count(t.Context(), n, WithWindowBytes(b))
		require.NoError(t, err)
		assert.Equal(t, want, got, "window %d bytes", b)
	}
}

func TestNew_InvalidWindow(t *testing.T) {
	for _, b := range []int{0, -1, 3, 100} {
		_, err := New(WithWindowBytes(b))
		var we *WindowSizeError
		require.ErrorAs(t, err, &we, "window %d", b)
		assert.Equal(t, b, we.Bytes)
	}
}

func TestCount_InvalidBound(t *testing.T) {
	_, err := Count(t.Context(), MaxBound+1)
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestRun_CapacityError(t *testing.T) {
	s := newSieve(t, WithHeapCapacity(10))
	_, err := s.Run(t.Context(), 10000, nil)

	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 10, ce.Capacity)
	assert.Equal(t, uint64(31), ce.Prime)
	assert.Equal(t, uint64(101), ce.Threshold)
	assert.Contains(t, ce.Error(), "heap capacity 10")
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res, err := newSieve(t).Run(ctx, 1000000, nil)
	require.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(3), res.Reached)
	assert.Equal(t, uint64(2), res.Count)
}

func TestRun_CancelFromEmit(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	res, err := newSieve(t).Run(ctx, 1000000, func(p uint64) error {
		if p == 101 {
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, uint64(101), res.Reached)
	assert.Equal(t, uint64(26), res.Count)
}

func TestRun_EmitError(t *testing.T) {
	stop := errors.New("stop")
	var got []uint64

	res, err := newSieve(t).Run(t.Context(), 1000, func(p uint64) error {
		got = append(got, p)
		if p == 13 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13}, got)
	assert.Equal(t, uint64(6), res.Count)
}

func TestEnumerate(t *testing.T) {
	s := newSieve(t, WithWindowBytes(2))

	var got []uint64
	for p, err := range s.Enumerate(t.Context(), 5000) {
		require.NoError(t, err)
		got = append(got, p)
	}
	assert.Equal(t, reference.Primes(5000), got)
}

func TestEnumerate_Break(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s := newSieve(t, WithMetricsCollector(metrics))

	var got []uint64
	for p, err := range s.Enumerate(t.Context(), 1000000) {
		require.NoError(t, err)
		got = append(got, p)
		if len(got) == 5 {
			break
		}
	}
	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, got)
	assert.Zero(t, metrics.GetStats().RunErrors)
}

func TestEnumerate_Error(t *testing.T) {
	s := newSieve(t, WithHeapCapacity(2))

	var (
		primes []uint64
		last   error
	)
	for p, err := range s.Enumerate(t.Context(), 1000) {
		if err != nil {
			last = err
			continue
		}
		primes = append(primes, p)
	}
	var ce *CapacityError
	require.ErrorAs(t, last, &ce)
	assert.Equal(t, uint64(5), ce.Prime)
	assert.Equal(t, []uint64{2, 3, 5}, primes)
}

func TestCountMany(t *testing.T) {
	s := newSieve(t, WithResourceLimits(ResourceLimits{MaxConcurrentRuns: 2}))
	bounds := []uint64{1000000, 10, 0, 100000, 1000, 2}

	got, err := s.CountMany(t.Context(), bounds)
	require.NoError(t, err)
	assert.Equal(t, []uint64{78498, 4, 0, 9592, 168, 1}, got)
}

func TestCountMany_Error(t *testing.T) {
	s := newSieve(t)
	_, err := s.CountMany(t.Context(), []uint64{100, MaxBound + 1})
	require.ErrorIs(t, err, ErrInvalidBound)
	assert.Contains(t, err.Error(), "bound 18446744073709551615")
}

func TestMilestones(t *testing.T) {
	got, err := newSieve(t).Milestones(t.Context(), 1000000)
	require.NoError(t, err)
	assert.Equal(t, []Milestone{
		{10, 4},
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{100000, 9592},
		{1000000, 78498},
	}, got)

	got, err = newSieve(t).Milestones(t.Context(), 9)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = newSieve(t).Milestones(t.Context(), 5000)
	require.NoError(t, err)
	assert.Equal(t, []Milestone{{10, 4}, {100, 25}, {1000, 168}}, got)
}

func TestResourceLimits_Memory(t *testing.T) {
	s := newSieve(t, WithResourceLimits(ResourceLimits{MemoryLimitBytes: 1024}))

	_, err := s.Count(t.Context(), 1000)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	s = newSieve(t, WithWindowBytes(64), WithResourceLimits(ResourceLimits{MemoryLimitBytes: 1 << 20}))
	n, err := s.Count(t.Context(), 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(168), n)
	assert.Zero(t, s.res.MemoryUsage())
}

func TestSieve_ConcurrentUse(t *testing.T) {
	s := newSieve(t, WithWindowBytes(256))

	var wg sync.WaitGroup
	results := make([]uint64, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.Count(context.Background(), 100000)
			assert.NoError(t, err)
			results[i] = n
		}()
	}
	wg.Wait()

	for _, n := range results {
		assert.Equal(t, uint64(9592), n)
	}
}

func TestProgressLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	s := newSieve(t,
		WithLogger(logger),
		WithCheckpointEvery(1000),
		WithProgressInterval(time.Hour),
	)
	_, err := s.Count(t.Context(), 100000)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "sieve progress"))
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "sieve progress") {
			assert.Equal(t, 1, strings.Count(line, "bound=100000"))
		}
	}
	assert.Equal(t, 1, strings.Count(out, "sieve completed"))
	assert.Contains(t, out, "count=9592")
}

func TestMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s := newSieve(t, WithMetricsCollector(metrics), WithHeapCapacity(10))

	_, err := s.Count(t.Context(), 100)
	require.NoError(t, err)
	_, err = s.Count(t.Context(), 1000)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, uint64(25), stats.PrimesCounted)
	assert.Equal(t, uint64(100), stats.LargestBound)
}

func TestCollect(t *testing.T) {
	set, err := newSieve(t).Collect(t.Context(), 100000)
	require.NoError(t, err)

	want := reference.Primes(100000)
	assert.Equal(t, uint64(len(want)), set.Len())
	assert.Equal(t, want, slices.Collect(set.All()))
}
