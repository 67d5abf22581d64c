package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/primesieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestCountCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"100"}, "count of primes = 25\n"},
		{[]string{"0"}, "count of primes = 0\n"},
		{[]string{"1e6"}, "count of primes = 78498\n"},
		{[]string{"1_000", "--window-bytes", "1"}, "count of primes = 168\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCountCommand_InvalidInput(t *testing.T) {
	for _, arg := range []string{"abc", "18446744073709551615", "1e30"} {
		out, err := run(t, arg)
		assert.ErrorIs(t, err, primesieve.ErrInvalidBound, arg)
		assert.Empty(t, out)
	}

	_, err := run(t, "100", "--window-bytes", "3")
	var we *primesieve.WindowSizeError
	assert.ErrorAs(t, err, &we)

	_, err = run(t, "100", "--log-level", "loud")
	assert.Error(t, err)

	_, err = run(t, "1", "2")
	assert.Error(t, err)
}

func TestCountCommand_HeapTooSmall(t *testing.T) {
	_, err := run(t, "10000", "--heap-capacity", "4")
	var ce *primesieve.CapacityError
	assert.ErrorAs(t, err, &ce)
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list", "30")
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n5\n7\n11\n13\n17\n19\n23\n29\n", out)

	out, err = run(t, "list", "1")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestVerifyCommand(t *testing.T) {
	out, err := run(t, "verify", "--max", "5000", "--step", "500", "--workers", "4", "--window-bytes", "8")
	require.NoError(t, err)
	assert.Equal(t, "verified 11 bounds up to 5000\n", out)

	_, err = run(t, "verify", "--step", "0")
	assert.Error(t, err)
}

func TestExportInspect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sets")

	out, err := run(t, "export", "10000", "--dir", dir, "--codec", "lz4")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1229 primes <= 10000 to pi-10000.pset")

	out, err = run(t, "inspect", "pi-10000.pset", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "bound: 10000\n")
	assert.Contains(t, out, "count: 1229\n")
	assert.Contains(t, out, "largest prime: 9973\n")

	out, err = run(t, "inspect", "pi-10000.pset", "--dir", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"largest_prime": 9973`)

	_, err = run(t, "inspect", "missing.pset", "--dir", dir)
	assert.ErrorIs(t, err, primesieve.ErrNotFound)
}

func TestExportCommand_Flags(t *testing.T) {
	_, err := run(t, "export", "100")
	assert.Error(t, err, "a store is required")

	_, err = run(t, "export", "100", "--dir", t.TempDir(), "--codec", "gzip")
	assert.Error(t, err)

	_, err = run(t, "export", "100", "--dir", t.TempDir(), "--s3-bucket", "b")
	assert.Error(t, err)

	out, err := run(t, "export", "100", "--dir", t.TempDir(), "--name", "small.pset", "--codec", "none", "--rate", "1048576")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 25 primes <= 100 to small.pset (none,")
}
