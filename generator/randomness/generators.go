// SPDX-FileCopyrightText: 2026 The safe-object-avalonia Authors
// SPDX-License-Identifier: Apache-2.0

// Package randomness provides centralized cryptographically secure random
// byte generation for key material, nonces and salts.
package randomness

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Bytes generates a new byte slice of the given size using the system CSPRNG.
func Bytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	_, err := io.ReadFull(rand.Reader, bytes)
	if err != nil {
		return nil, fmt.Errorf("error generating bytes: %w", err)
	}
	return bytes, nil
}
