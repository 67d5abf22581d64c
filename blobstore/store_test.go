package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"memory": NewMemoryStore(),
		"local":  NewLocalStore(filepath.Join(t.TempDir(), "exports")),
	}
}

func TestStores(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()

			_, err := s.Open(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, names)

			require.NoError(t, s.Put(ctx, "primes/1e6.pset", []byte("first")))
			require.NoError(t, s.Put(ctx, "primes/1e6.pset", []byte("second")))
			require.NoError(t, s.Put(ctx, "primes/1e7.pset", []byte("other")))
			require.NoError(t, s.Put(ctx, "empty", nil))

			data, err := Get(ctx, s, "primes/1e6.pset")
			require.NoError(t, err)
			assert.Equal(t, "second", string(data))

			data, err = Get(ctx, s, "empty")
			require.NoError(t, err)
			assert.Empty(t, data)

			require.NoError(t, s.PutReader(ctx, "primes/1e8.pset", strings.NewReader("streamed"), -1))
			data, err = Get(ctx, s, "primes/1e8.pset")
			require.NoError(t, err)
			assert.Equal(t, "streamed", string(data))
			require.NoError(t, s.Delete(ctx, "primes/1e8.pset"))

			names, err = s.List(ctx, "primes/")
			require.NoError(t, err)
			assert.Equal(t, []string{"primes/1e6.pset", "primes/1e7.pset"}, names)

			require.NoError(t, s.Delete(ctx, "primes/1e6.pset"))
			require.NoError(t, s.Delete(ctx, "primes/1e6.pset"))
			_, err = s.Open(ctx, "primes/1e6.pset")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlob_ReadAt(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, s.Put(ctx, "blob", []byte("count of primes")))

			b, err := s.Open(ctx, "blob")
			require.NoError(t, err)
			defer b.Close()

			assert.Equal(t, int64(15), b.Size())

			buf := make([]byte, 6)
			n, err := b.ReadAt(ctx, buf, 9)
			require.NoError(t, err)
			assert.Equal(t, 6, n)
			assert.Equal(t, "primes", string(buf))

			n, err = b.ReadAt(ctx, make([]byte, 10), 9)
			assert.Equal(t, 6, n)
			assert.ErrorIs(t, err, io.EOF)

			_, err = b.ReadAt(ctx, buf, 100)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	require.NoError(t, s.Put(t.Context(), "a", []byte("abc")))

	_, err := os.Stat(filepath.Join(dir, "a"))
	require.NoError(t, err)

	b, err := s.Open(t.Context(), "a")
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err = b.ReadAt(t.Context(), make([]byte, 1), 0)
	assert.ErrorIs(t, err, os.ErrClosed)
}
