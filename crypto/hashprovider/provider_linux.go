//go:build linux

package hashprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

type linuxProvider struct{}

func newPlatformProvider() Provider {
	return linuxProvider{}
}

func (linuxProvider) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

func (linuxProvider) HashName() Name {
	return SHA256
}

func (linuxProvider) HMACKeySize() int {
	return sha256.Size
}

func (linuxProvider) SaltSize() int {
	return sha256.Size
}
