// Package storage orchestrates the chunked AEAD encryption and decryption of
// file bodies on top of vault, noncederive and stream.
package storage

import (
	"strings"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
)

const maxPathLength = 260

const opValidate = "storage.FileProcessingRequest.Validate"

// reservedStems lists platform-reserved file stems. COM^ and LPT^ are not
// real Windows device names; they are kept as a literal transcription of a
// validator this one descends from and are matched only as the exact
// strings "COM^"/"LPT^".
var reservedStems = buildReservedStems()

func buildReservedStems() map[string]struct{} {
	m := map[string]struct{}{
		"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
		"COM^": {}, "LPT^": {},
	}
	for i := '1'; i <= '9'; i++ {
		m["COM"+string(i)] = struct{}{}
		m["LPT"+string(i)] = struct{}{}
	}
	return m
}

// FileProcessingRequest names one encrypt/decrypt invocation's source and
// destination.
type FileProcessingRequest struct {
	FileID          string
	SourcePath      string
	DestinationPath string
}

// Validate applies the path and filename hygiene rules summarised for the
// core: non-empty identifiers, bounded path length, no ".." segments, no
// reserved stems, no disallowed characters, and a valid platform root.
func (r FileProcessingRequest) Validate() error {
	if isBlank(r.FileID) || isBlank(r.SourcePath) || isBlank(r.DestinationPath) {
		return errs.New(opValidate, errs.InvalidRequest, nil)
	}

	if err := validatePath(r.SourcePath); err != nil {
		return err
	}
	return validatePath(r.DestinationPath)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validatePath(path string) error {
	if len(path) > maxPathLength {
		return errs.New(opValidate, errs.InvalidRequest, nil)
	}
	sepCheck := path
	if strings.HasPrefix(sepCheck, `\\`) {
		// A UNC root legitimately begins with a doubled backslash.
		sepCheck = sepCheck[2:]
	}
	if strings.Contains(sepCheck, "//") || strings.Contains(sepCheck, `\\`) {
		return errs.New(opValidate, errs.InvalidRequest, nil)
	}
	if strings.HasSuffix(path, " ") || strings.HasSuffix(path, ".") {
		return errs.New(opValidate, errs.InvalidRequest, nil)
	}
	if !hasValidRoot(path) {
		return errs.New(opValidate, errs.InvalidRequest, nil)
	}

	for _, segment := range splitSegments(stripRoot(path)) {
		if segment == ".." {
			return errs.New(opValidate, errs.InvalidRequest, nil)
		}
		if isReservedStem(segment) {
			return errs.New(opValidate, errs.InvalidRequest, nil)
		}
		if isInvalidSegment(segment) {
			return errs.New(opValidate, errs.InvalidRequest, nil)
		}
	}
	return nil
}

func splitSegments(path string) []string {
	replaced := strings.ReplaceAll(path, `\`, "/")
	var segments []string
	for _, s := range strings.Split(replaced, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func isReservedStem(segment string) bool {
	stem := segment
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	_, found := reservedStems[strings.ToUpper(stem)]
	return found
}

func isInvalidSegment(segment string) bool {
	if strings.ContainsAny(segment, `*?"<>|`) {
		return true
	}
	return isInvalidFilename(segment)
}
