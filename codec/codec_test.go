package codec

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressible() []byte {
	return bytes.Repeat([]byte("0123456789abcdef"), 4096)
}

func random(n int) []byte {
	rng := rand.New(rand.NewPCG(9, 9))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}

func TestByName(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())

		byType, ok := ByType(c.Type())
		require.True(t, ok)
		assert.Equal(t, c, byType)
	}
	_, ok := ByName("gzip")
	assert.False(t, ok)
	_, ok = ByType(Type(99))
	assert.False(t, ok)

	assert.Equal(t, "zstd", TypeZstd.String())
	assert.Equal(t, "codec(99)", Type(99).String())
}

func TestRoundTrip(t *testing.T) {
	data := compressible()
	for _, c := range []Codec{None{}, LZ4{}, Zstd{}} {
		t.Run(c.Name(), func(t *testing.T) {
			body, used, err := Compress(c, data)
			require.NoError(t, err)
			assert.Equal(t, c.Type(), used)
			if used != TypeNone {
				assert.Less(t, len(body), len(data))
			}

			out, err := Decompress(used, body, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestCompress_FallsBackOnIncompressible(t *testing.T) {
	data := random(4096)
	for _, c := range []Codec{LZ4{}, Zstd{}} {
		body, used, err := Compress(c, data)
		require.NoError(t, err)
		assert.Equal(t, TypeNone, used, c.Name())
		assert.Equal(t, data, body)
	}
}

func TestCompress_NilUsesDefault(t *testing.T) {
	_, used, err := Compress(nil, compressible())
	require.NoError(t, err)
	assert.Equal(t, Default.Type(), used)
}

func TestDecompress_SizeMismatch(t *testing.T) {
	data := compressible()
	for _, c := range []Codec{None{}, LZ4{}, Zstd{}} {
		body, used, err := Compress(c, data)
		require.NoError(t, err)
		_, err = Decompress(used, body, len(data)-1)
		assert.Error(t, err, c.Name())
	}

	_, err := Decompress(Type(42), nil, 0)
	assert.Error(t, err)
}
