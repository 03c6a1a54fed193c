//go:build !windows

package storage

import "strings"

var invalidPathChars = []rune{'\x00'}

func isInvalidFilename(segment string) bool {
	return strings.ContainsAny(segment, string(invalidPathChars))
}

func hasValidRoot(path string) bool {
	return strings.HasPrefix(path, "/")
}

func stripRoot(path string) string {
	return strings.TrimPrefix(path, "/")
}
