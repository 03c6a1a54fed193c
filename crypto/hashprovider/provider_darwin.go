//go:build darwin

package hashprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

type darwinProvider struct{}

func newPlatformProvider() Provider {
	return darwinProvider{}
}

func (darwinProvider) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

func (darwinProvider) HashName() Name {
	return SHA256
}

func (darwinProvider) HMACKeySize() int {
	return sha256.Size
}

func (darwinProvider) SaltSize() int {
	return sha256.Size
}
