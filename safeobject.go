package safeobject

import (
	"context"

	"github.com/wioniqle-q/safe-object-avalonia/storage"
	"github.com/wioniqle-q/safe-object-avalonia/vault"
)

// Core is the entry point a caller (shell, CLI, service) constructs once per
// process and reuses across files: it owns the process-local system key and
// dispatches encrypt/decrypt calls to the storage pipeline.
type Core struct {
	storage *storage.Service
}

// New returns a Core whose system security key lives under baseDir.
func New(baseDir string) *Core {
	return &Core{storage: storage.New(vault.New(baseDir))}
}

// Encrypt protects req.SourcePath at rest under mkB64, writing the
// self-contained ciphertext file to req.DestinationPath.
func (c *Core) Encrypt(ctx context.Context, req storage.FileProcessingRequest, mkB64 string) error {
	return c.storage.Encrypt(ctx, req, mkB64)
}

// Decrypt reverses Encrypt, re-presenting the same master key used to
// protect req.SourcePath.
func (c *Core) Decrypt(ctx context.Context, req storage.FileProcessingRequest, mkB64 string) error {
	return c.storage.Decrypt(ctx, req, mkB64)
}
