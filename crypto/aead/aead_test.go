package aead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
)

func key32() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	plaintext := []byte("the content key")
	sealed, err := Seal(key32(), plaintext, nil)
	require.NoError(t, err)
	assert.Len(t, sealed, NonceSize+len(plaintext)+TagSize)

	got, err := Open(key32(), sealed, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpenFailsOnTamperedTag(t *testing.T) {
	t.Parallel()

	sealed, err := Seal(key32(), []byte("secret"), nil)
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0x01

	_, err = Open(key32(), sealed, nil)
	assert.True(t, errs.Is(err, errs.AuthenticationFailed))
}

func TestEncryptDecryptChunkRoundTrip(t *testing.T) {
	t.Parallel()

	nonce := make([]byte, NonceSize)
	plaintext := []byte("chunk payload")

	tag, ciphertext, err := EncryptChunk(key32(), nonce, plaintext, nil)
	require.NoError(t, err)
	assert.Len(t, tag, TagSize)
	assert.Len(t, ciphertext, len(plaintext))

	got, err := DecryptChunk(key32(), nonce, tag, ciphertext, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptChunkFailsOnTamperedTag(t *testing.T) {
	t.Parallel()

	nonce := make([]byte, NonceSize)
	tag, ciphertext, err := EncryptChunk(key32(), nonce, []byte("payload"), nil)
	require.NoError(t, err)
	tag[0] ^= 0x01

	_, err = DecryptChunk(key32(), nonce, tag, ciphertext, nil)
	assert.True(t, errs.Is(err, errs.AuthenticationFailed))
}
