// Package noncederive computes the deterministic per-chunk nonce used by the
// storage pipeline from a file nonce and a chunk index, so that decryption
// never needs to persist anything beyond the file nonce already carried in
// the header.
package noncederive

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
)

// NonceSize is the length in bytes of a derived chunk nonce, matching the
// AES-GCM standard nonce size.
const NonceSize = 12

// NonceContext domain-separates chunk-nonce derivation from any other use of
// HKDF-Expand over the same salt. Frozen once chosen: changing it changes
// every derived nonce for every existing file.
const NonceContext = "NexpLock/chunk-nonce/v1"

const opDerive = "noncederive.Derive"

// Salt amortises the per-stream cost of nonce derivation down to a single
// HKDF-Expand per chunk. Compute once per stream via Precompute and reuse it
// for every chunk index.
type Salt [sha256.Size]byte

// Precompute derives the per-stream salt from the file nonce:
// salt = HMAC-SHA256(key=fileNonce, msg=0_i64_le).
func Precompute(fileNonce []byte) (Salt, error) {
	var salt Salt

	mac := hmac.New(sha256.New, fileNonce)
	var zero [8]byte
	if _, err := mac.Write(zero[:]); err != nil {
		return salt, errs.New(opDerive, errs.IO, err)
	}
	copy(salt[:], mac.Sum(nil))
	return salt, nil
}

// Derive computes the nonce for chunk index idx given a precomputed salt.
//
// prk = HMAC-SHA256(key=salt, msg=idx_le)
// info = idx_le || NonceContext
// nonce = HKDF-Expand-SHA256(prk, info, L=NonceSize)
func Derive(salt Salt, idx uint64) ([]byte, error) {
	var idxLE [8]byte
	binary.LittleEndian.PutUint64(idxLE[:], idx)

	mac := hmac.New(sha256.New, salt[:])
	if _, err := mac.Write(idxLE[:]); err != nil {
		return nil, errs.New(opDerive, errs.IO, err)
	}
	prk := mac.Sum(nil)

	info := make([]byte, 0, len(idxLE)+len(NonceContext))
	info = append(info, idxLE[:]...)
	info = append(info, NonceContext...)

	nonce := make([]byte, NonceSize)
	kdf := hkdf.Expand(sha256.New, prk, info)
	if _, err := io.ReadFull(kdf, nonce); err != nil {
		return nil, errs.New(opDerive, errs.IO, err)
	}
	return nonce, nil
}
