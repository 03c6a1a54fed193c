// Package errs defines the error taxonomy shared by the vault, stream and
// storage components. Every operation surfaces one of these kinds instead of
// an opaque error so that a caller (and the tests) can branch on what
// happened without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind enumerates the error categories raised by the core.
type Kind string

const (
	// InvalidRequest marks a path or identifier validation failure.
	InvalidRequest Kind = "invalid_request"
	// InvalidMasterKey marks a base64 decode or key-length failure.
	InvalidMasterKey Kind = "invalid_master_key"
	// VaultUnavailable marks a system-key file that could not be read or written.
	VaultUnavailable Kind = "vault_unavailable"
	// VaultCorrupt marks a system-key file with an unexpected length.
	VaultCorrupt Kind = "vault_corrupt"
	// AuthenticationFailed marks an AEAD tag mismatch, on unwrap or chunk decrypt.
	AuthenticationFailed Kind = "authentication_failed"
	// IO marks a read/write failure, including a short read on the header.
	IO Kind = "io_error"
	// IODurability marks a platform durable-flush syscall failure.
	IODurability Kind = "io_durability_error"
	// Cancelled marks a cooperative cancellation observed mid-operation.
	Cancelled Kind = "cancelled"
	// AlreadyClosed marks an operation attempted on a disposed stream or service.
	AlreadyClosed Kind = "already_closed"
)

// Error wraps a Kind with the operation that raised it and the underlying
// cause, if any.
type Error struct {
	Kind  Kind
	Op    string
	Phase string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil && e.Phase == "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Kind, e.Phase)
	case e.Phase == "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Kind, e.Phase, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error for the given operation and kind.
func New(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewPhase builds an Error for the given operation, kind and I/O phase.
func NewPhase(op string, kind Kind, phase string, err error) *Error {
	return &Error{Kind: kind, Op: op, Phase: phase, Err: err}
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
