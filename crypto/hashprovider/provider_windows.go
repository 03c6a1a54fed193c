//go:build windows

package hashprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

type windowsProvider struct{}

func newPlatformProvider() Provider {
	return windowsProvider{}
}

func (windowsProvider) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

func (windowsProvider) HashName() Name {
	return SHA256
}

func (windowsProvider) HMACKeySize() int {
	return sha256.Size
}

func (windowsProvider) SaltSize() int {
	return sha256.Size
}
