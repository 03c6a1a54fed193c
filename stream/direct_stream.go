// Package stream provides DirectStream, a durable, write-through file
// abstraction: write handles are opened write-through, and Flush issues a
// platform durable flush so that bytes written before it survive a crash or
// power loss. Write itself does not flush. Every stream advises the OS that
// access is strictly sequential.
package stream

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
	"github.com/wioniqle-q/safe-object-avalonia/log"
)

// DirectStream is a durable, sequential, write-through file stream.
//
// Close is idempotent: a second call is a no-op, and any operation attempted
// after Close fails with errs.AlreadyClosed.
type DirectStream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	// Flush forces previously written bytes to stable storage. Overlapping
	// calls are coalesced: only one platform flush syscall is issued at a
	// time, and a caller that arrives while one is in flight returns
	// immediately without error, since the in-flight flush already covers
	// its data.
	Flush() error
	// Length reports the current size of the underlying file.
	Length() (int64, error)
	Close() error
}

type directStream struct {
	f    *os.File
	path string

	mu     sync.Mutex
	closed bool

	flushBusy int32
}

const opDirectStream = "stream.DirectStream"

// OpenRead opens path for sequential, read-only access.
func OpenRead(path string) (DirectStream, error) {
	f, err := openReadFile(path)
	if err != nil {
		return nil, errs.NewPhase(opDirectStream, errs.IO, "open", err)
	}
	return &directStream{f: f, path: path}, nil
}

// OpenWrite opens path for sequential, write-through, create-or-truncate
// access.
func OpenWrite(path string) (DirectStream, error) {
	f, err := openWriteFile(path)
	if err != nil {
		return nil, errs.NewPhase(opDirectStream, errs.IO, "open", err)
	}
	return &directStream{f: f, path: path}, nil
}

func (s *directStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0, errs.New(opDirectStream, errs.AlreadyClosed, nil)
	}

	n, err := s.f.Read(p)
	if err != nil && err != io.EOF {
		return n, errs.NewPhase(opDirectStream, errs.IO, "read", err)
	}
	return n, err
}

func (s *directStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0, errs.New(opDirectStream, errs.AlreadyClosed, nil)
	}

	n, err := s.f.Write(p)
	if err != nil {
		return n, errs.NewPhase(opDirectStream, errs.IO, "write", err)
	}
	return n, nil
}

// Flush implements the single-slot flush gate described by the package
// documentation: the first caller performs the generic flush plus the
// platform durable flush, any caller arriving while that is in flight is
// elided.
func (s *directStream) Flush() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return errs.New(opDirectStream, errs.AlreadyClosed, nil)
	}

	if !atomic.CompareAndSwapInt32(&s.flushBusy, 0, 1) {
		// A flush is already in flight; its result covers our data too.
		return nil
	}
	defer atomic.StoreInt32(&s.flushBusy, 0)

	if err := s.f.Sync(); err != nil {
		return errs.NewPhase(opDirectStream, errs.IODurability, "sync", err)
	}
	if err := durableFlush(s.f); err != nil {
		return errs.NewPhase(opDirectStream, errs.IODurability, "durable-flush", err)
	}
	return nil
}

func (s *directStream) Length() (int64, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0, errs.New(opDirectStream, errs.AlreadyClosed, nil)
	}

	fi, err := s.f.Stat()
	if err != nil {
		return 0, errs.NewPhase(opDirectStream, errs.IO, "stat", err)
	}
	return fi.Size(), nil
}

func (s *directStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.f.Close(); err != nil {
		return errs.NewPhase(opDirectStream, errs.IO, "close", err)
	}
	return nil
}

// warnf reports a best-effort platform hint failure without failing the
// calling operation. No secret material ever reaches this path.
func warnf(op, hint string, err error) {
	log.Error(err).Field("op", op).Messagef("best-effort hint %q failed", hint)
}
