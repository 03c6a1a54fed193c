// Package hashprovider selects the HMAC and hash primitives used to derive
// key material and nonces, isolated behind a capability interface so a
// platform can later swap in a hardware-accelerated primitive without
// touching call sites.
package hashprovider

import "hash"

// Name identifies the underlying hash algorithm reported by a provider.
type Name string

// SHA256 is currently the only hash family selected by any platform variant.
const SHA256 Name = "sha256"

// Provider exposes the hash primitives a platform makes available to the
// vault and storage components.
type Provider interface {
	// NewHMAC builds a new keyed HMAC instance using the platform hash.
	NewHMAC(key []byte) hash.Hash
	// HashName reports the selected hash algorithm identifier.
	HashName() Name
	// HMACKeySize reports the recommended HMAC key size in bytes.
	HMACKeySize() int
	// SaltSize reports the recommended salt size in bytes.
	SaltSize() int
}

// New returns the Provider selected for the host operating system at build
// time. All three current platform variants report SHA-256, a 32 byte HMAC
// key size and a 32 byte salt size; the indirection exists so a platform can
// diverge later without call sites changing.
func New() Provider {
	return newPlatformProvider()
}
