// Package safeobject protects arbitrary files at rest behind a caller-supplied
// master key.
//
// It generates a random per-file content key, wraps it under a process-local
// system key plus the caller's master key, and streams the file body through
// a chunked AEAD cipher so that files larger than memory can be processed
// without buffering the whole plaintext.
//
// The package is organized around four collaborators: crypto/hashprovider
// selects the platform hash primitives, stream provides the durable,
// write-through file abstraction every byte passes through, vault owns the
// process-local system key and performs the two-layer key wrap, and storage
// orchestrates the chunked encrypt/decrypt pipeline on top of the other three.
package safeobject
