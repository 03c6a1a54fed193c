package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
)

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "abc-123", SourcePath: "/tmp/in.bin", DestinationPath: "/tmp/out.bin"}
	assert.NoError(t, r.Validate())
}

func TestValidateRejectsBlankFields(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "  ", SourcePath: "/tmp/in.bin", DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsDotDotSegment(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "a", SourcePath: "/tmp/../etc/passwd", DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsReservedStem(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "a", SourcePath: "/tmp/CON", DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsReservedStemWithExtension(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "a", SourcePath: "/tmp/NUL.txt", DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsInvalidCharacters(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "a", SourcePath: `/tmp/bad*name.bin`, DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsOverlongPath(t *testing.T) {
	t.Parallel()

	long := "/tmp/"
	for len(long) <= maxPathLength {
		long += "a"
	}
	r := FileProcessingRequest{FileID: "a", SourcePath: long, DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}

func TestValidateRejectsMissingRoot(t *testing.T) {
	t.Parallel()

	r := FileProcessingRequest{FileID: "a", SourcePath: "relative/in.bin", DestinationPath: "/tmp/out.bin"}
	assert.True(t, errs.Is(r.Validate(), errs.InvalidRequest))
}
