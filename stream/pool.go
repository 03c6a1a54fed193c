package stream

import (
	"sync"

	"github.com/awnumar/memguard"
)

// BufferSize is the maximum plaintext chunk size processed per iteration of
// the encrypt/decrypt pipeline.
const BufferSize = 81920

// bufferPool hands out zeroed scratch buffers sized for one chunk (the AEAD
// tag is not included), and guarantees every buffer is wiped before it is
// reused.
type bufferPool struct {
	pool sync.Pool
}

// Pool is the process-wide scratch buffer pool used by the storage pipeline.
var Pool = &bufferPool{
	pool: sync.Pool{
		New: func() any {
			b := make([]byte, BufferSize)
			return &b
		},
	},
}

// Rent returns a zeroed buffer of at least BufferSize bytes.
func (p *bufferPool) Rent() *[]byte {
	buf := p.pool.Get().(*[]byte)
	memguard.WipeBytes(*buf)
	return buf
}

// Return wipes the buffer and releases it back to the pool.
func (p *bufferPool) Return(buf *[]byte) {
	if buf == nil {
		return
	}
	memguard.WipeBytes(*buf)
	p.pool.Put(buf)
}
