package primesieve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/primesieve/blobstore"
	"github.com/hupe1980/primesieve/internal/resource"
	"github.com/hupe1980/primesieve/internal/sieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, translateError(plain))

	tests := []struct {
		in   error
		want error
	}{
		{fmt.Errorf("wrapped: %w", sieve.ErrInvalidBound), ErrInvalidBound},
		{fmt.Errorf("%w at 9", sieve.ErrCanceled), ErrCanceled},
		{resource.ErrMemoryLimitExceeded, ErrMemoryLimitExceeded},
		{blobstore.ErrNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		got := translateError(tt.in)
		assert.ErrorIs(t, got, tt.want)
		assert.ErrorIs(t, got, tt.in)
	}

	got := translateError(&sieve.WindowSizeError{Bytes: 3})
	var we *WindowSizeError
	require.ErrorAs(t, got, &we)
	assert.Equal(t, 3, we.Bytes)
	var inner *sieve.WindowSizeError
	assert.ErrorAs(t, errors.Unwrap(got), &inner)
}
