// Package vault owns the process-local system security key and performs the
// two-layer wrap/unwrap of per-file content keys around it.
package vault

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wioniqle-q/safe-object-avalonia/crypto/aead"
	"github.com/wioniqle-q/safe-object-avalonia/crypto/canonicalization"
	"github.com/wioniqle-q/safe-object-avalonia/crypto/hashprovider"
	"github.com/wioniqle-q/safe-object-avalonia/errs"
	"github.com/wioniqle-q/safe-object-avalonia/generator/randomness"
	"github.com/wioniqle-q/safe-object-avalonia/stream"
)

const (
	// SystemSecurityKeySize is the SSK length in bits.
	SystemSecurityKeySize = 256
	// FinalEncryptedKeySize is the on-disk size of a wrapped 256-bit content
	// key: two AEAD layers, each contributing nonce(12)+tag(16) on top of
	// the 32-byte key.
	FinalEncryptedKeySize = 88

	seedSize         = SystemSecurityKeySize / 8
	pbkdf2Iterations = 100_000

	vaultSubdir = "vault"
	keyFileName = "system.key"

	mkLayerInfo  = "safeobject/vault/mk-layer/v1"
	sskLayerInfo = "safeobject/vault/ssk-layer/v1"
)

const (
	opEncryptKey = "vault.EncryptKey"
	opDecryptKey = "vault.DecryptKey"
	opLoadSSK    = "vault.loadSSK"
)

// Service owns the process-local SSK and performs two-layer content-key
// wrapping. The zero value is not usable; construct with New.
type Service struct {
	baseDir string

	once    sync.Once
	ssk     []byte
	loadErr error
}

// New returns a Service rooted at baseDir; the SSK file lives at
// <baseDir>/vault/system.key.
func New(baseDir string) *Service {
	return &Service{baseDir: baseDir}
}

// EncryptKey computes wck = AEAD(SSK, AEAD(MK, ck)) where mkB64 is the
// caller's base64-encoded master key.
func (s *Service) EncryptKey(ck []byte, mkB64 string) ([]byte, error) {
	mk, err := decodeMasterKey(mkB64, opEncryptKey)
	if err != nil {
		return nil, err
	}
	defer wipe(mk)

	ssk, err := s.loadSSK()
	if err != nil {
		return nil, err
	}

	mkAAD, err := canonicalization.PreAuthenticationEncoding([]byte(mkLayerInfo))
	if err != nil {
		return nil, errs.New(opEncryptKey, errs.InvalidRequest, err)
	}
	innerLayer, err := aead.Seal(mk, ck, mkAAD)
	if err != nil {
		return nil, errs.New(opEncryptKey, errs.InvalidMasterKey, err)
	}
	defer wipe(innerLayer)

	sskAAD, err := canonicalization.PreAuthenticationEncoding([]byte(sskLayerInfo))
	if err != nil {
		return nil, errs.New(opEncryptKey, errs.InvalidRequest, err)
	}
	outerLayer, err := aead.Seal(ssk, innerLayer, sskAAD)
	if err != nil {
		return nil, errs.New(opEncryptKey, errs.VaultUnavailable, err)
	}
	return outerLayer, nil
}

// DecryptKey reverses EncryptKey. A tag mismatch at either layer is reported
// as errs.AuthenticationFailed.
func (s *Service) DecryptKey(wck []byte, mkB64 string) ([]byte, error) {
	mk, err := decodeMasterKey(mkB64, opDecryptKey)
	if err != nil {
		return nil, err
	}
	defer wipe(mk)

	ssk, err := s.loadSSK()
	if err != nil {
		return nil, err
	}

	sskAAD, err := canonicalization.PreAuthenticationEncoding([]byte(sskLayerInfo))
	if err != nil {
		return nil, errs.New(opDecryptKey, errs.InvalidRequest, err)
	}
	innerLayer, err := aead.Open(ssk, wck, sskAAD)
	if err != nil {
		return nil, err
	}
	defer wipe(innerLayer)

	mkAAD, err := canonicalization.PreAuthenticationEncoding([]byte(mkLayerInfo))
	if err != nil {
		return nil, errs.New(opDecryptKey, errs.InvalidRequest, err)
	}
	ck, err := aead.Open(mk, innerLayer, mkAAD)
	if err != nil {
		return nil, err
	}
	return ck, nil
}

// loadSSK returns the process-local SSK, reading it from disk if present or
// generating and persisting a new one on first use. The result (or failure)
// is memoised for the lifetime of the Service: a failed first attempt is
// sticky, matching the one-shot semantics of an async lazily-initialised
// value.
func (s *Service) loadSSK() ([]byte, error) {
	s.once.Do(func() {
		s.ssk, s.loadErr = s.loadOrCreateSSK()
	})
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.ssk, nil
}

func (s *Service) loadOrCreateSSK() ([]byte, error) {
	path := filepath.Join(s.baseDir, vaultSubdir, keyFileName)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(raw) != seedSize {
			return nil, errs.New(opLoadSSK, errs.VaultCorrupt, nil)
		}
		return raw, nil
	case os.IsNotExist(err):
		return s.createSSK(path)
	default:
		return nil, errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
}

func (s *Service) createSSK(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}

	provider := hashprovider.New()

	seed, err := randomness.Bytes(seedSize)
	if err != nil {
		return nil, errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	defer wipe(seed)

	salt, err := randomness.Bytes(provider.SaltSize())
	if err != nil {
		return nil, errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	defer wipe(salt)

	ssk := pbkdf2.Key(seed, salt, pbkdf2Iterations, provider.HMACKeySize(), sha256.New)

	if err := persistSSK(path, ssk); err != nil {
		wipe(ssk)
		return nil, err
	}
	return ssk, nil
}

func persistSSK(path string, ssk []byte) error {
	// Write via a fresh file so a partially written key file is never
	// observed as the well-known path; the DirectStream flush makes the key
	// bytes durable before the rename, which is not itself flushed.
	tmp := path + ".tmp"

	ds, err := stream.OpenWrite(tmp)
	if err != nil {
		return errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	if _, err := ds.Write(ssk); err != nil {
		_ = ds.Close()
		return errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	if err := ds.Flush(); err != nil {
		_ = ds.Close()
		return errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	if err := ds.Close(); err != nil {
		return errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return errs.New(opLoadSSK, errs.VaultUnavailable, err)
	}
	return nil
}

func decodeMasterKey(mkB64, op string) ([]byte, error) {
	mk, err := base64.StdEncoding.DecodeString(mkB64)
	if err != nil {
		return nil, errs.New(op, errs.InvalidMasterKey, err)
	}
	switch len(mk) {
	case 16, 24, 32:
		return mk, nil
	default:
		return nil, errs.New(op, errs.InvalidMasterKey, nil)
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
