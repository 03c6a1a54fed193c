package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRentReturnZeroed(t *testing.T) {
	t.Parallel()

	buf := Pool.Rent()
	assert.Len(t, *buf, BufferSize)
	for i := range *buf {
		(*buf)[i] = 0xFF
	}
	Pool.Return(buf)

	buf2 := Pool.Rent()
	for _, b := range *buf2 {
		assert.Equal(t, byte(0), b)
	}
	Pool.Return(buf2)
}
