package noncederive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	fn := []byte("123456789012")
	salt, err := Precompute(fn)
	require.NoError(t, err)

	a, err := Derive(salt, 42)
	require.NoError(t, err)
	b, err := Derive(salt, 42)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, NonceSize)
}

func TestDeriveNoncesAreUniquePerIndex(t *testing.T) {
	t.Parallel()

	fn := []byte("abcdefghijkl")
	salt, err := Precompute(fn)
	require.NoError(t, err)

	const count = 1 << 12
	seen := make(map[string]struct{}, count)
	for idx := uint64(0); idx < count; idx++ {
		nonce, err := Derive(salt, idx)
		require.NoError(t, err)
		key := string(nonce)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate nonce at idx %d", idx)
		seen[key] = struct{}{}
	}
}

func TestDeriveDiffersAcrossFileNonces(t *testing.T) {
	t.Parallel()

	saltA, err := Precompute([]byte("aaaaaaaaaaaa"))
	require.NoError(t, err)
	saltB, err := Precompute([]byte("bbbbbbbbbbbb"))
	require.NoError(t, err)

	a, err := Derive(saltA, 7)
	require.NoError(t, err)
	b, err := Derive(saltB, 7)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
