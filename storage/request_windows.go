//go:build windows

package storage

import "strings"

var invalidPathChars = []rune{'\x00', '/', '\\', ':'}

func isInvalidFilename(segment string) bool {
	return strings.ContainsAny(segment, string(invalidPathChars))
}

func hasValidRoot(path string) bool {
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}
	return strings.HasPrefix(path, `\\`)
}

// stripRoot removes the drive or UNC host/share prefix so that the
// remaining path segments can be checked for reserved names and invalid
// characters without tripping over the drive colon or UNC separators.
func stripRoot(path string) string {
	if len(path) >= 3 && path[1] == ':' {
		return path[3:]
	}
	if strings.HasPrefix(path, `\\`) {
		rest := path[2:]
		parts := strings.SplitN(rest, `\`, 3)
		if len(parts) == 3 {
			return parts[2]
		}
		return ""
	}
	return path
}
