// Package aead implements the single AES-GCM wrap/unwrap primitive shared by
// VaultService's two key-wrap layers and by the storage pipeline's chunk
// cipher.
package aead

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
	"github.com/wioniqle-q/safe-object-avalonia/generator/randomness"
)

// NonceSize is the standard AES-GCM nonce length.
const NonceSize = 12

// TagSize is the standard AES-GCM authentication tag length.
const TagSize = 16

const opSeal = "aead.Seal"
const opOpen = "aead.Open"

// Seal encrypts plaintext under key and returns nonce || ciphertext || tag.
// A fresh random nonce is generated for every call; key must be 16, 24 or 32
// bytes.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key, opSeal)
	if err != nil {
		return nil, err
	}

	nonce, err := randomness.Bytes(NonceSize)
	if err != nil {
		return nil, errs.New(opSeal, errs.IO, err)
	}

	out := make([]byte, 0, len(nonce)+len(plaintext)+TagSize)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, aad)
	return out, nil
}

// Open reverses Seal: sealed must be at least NonceSize+TagSize bytes. A tag
// mismatch is reported as errs.AuthenticationFailed.
func Open(key, sealed, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key, opOpen)
	if err != nil {
		return nil, err
	}

	if len(sealed) < NonceSize+TagSize {
		return nil, errs.New(opOpen, errs.AuthenticationFailed, nil)
	}

	nonce := sealed[:NonceSize]
	ciphertext := sealed[NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, errs.New(opOpen, errs.AuthenticationFailed, err)
	}
	return plaintext, nil
}

// EncryptChunk encrypts one chunk under an externally derived nonce (see
// package noncederive) and returns the tag and ciphertext separately, since
// the on-disk chunk layout stores the tag before the ciphertext while Go's
// cipher.AEAD appends it after.
func EncryptChunk(key, nonce, plaintext, aad []byte) (tag, ciphertext []byte, err error) {
	gcm, err := newGCM(key, opSeal)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != NonceSize {
		return nil, nil, errs.New(opSeal, errs.InvalidRequest, nil)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	ciphertext = sealed[:len(sealed)-TagSize]
	tag = sealed[len(sealed)-TagSize:]
	return tag, ciphertext, nil
}

// DecryptChunk reverses EncryptChunk given the tag and ciphertext read from
// disk in that order. A tag mismatch is reported as errs.AuthenticationFailed.
func DecryptChunk(key, nonce, tag, ciphertext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key, opOpen)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, errs.New(opOpen, errs.AuthenticationFailed, nil)
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, errs.New(opOpen, errs.AuthenticationFailed, err)
	}
	return plaintext, nil
}

func newGCM(key []byte, op string) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.New(op, errs.InvalidMasterKey, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errs.New(op, errs.InvalidMasterKey, err)
	}
	return gcm, nil
}
