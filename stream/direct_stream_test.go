package stream

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wioniqle-q/safe-object-avalonia/errs"
)

func TestDirectStreamWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "payload.bin")
	want := []byte("the quick brown fox jumps over the lazy dog")

	w, err := OpenWrite(path)
	require.NoError(t, err)
	n, err := w.Write(want)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)
	require.NoError(t, w.Flush())

	length, err := w.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), length)
	require.NoError(t, w.Close())

	r, err := OpenRead(path)
	require.NoError(t, err)
	got, err := io.ReadAll(readerFunc(r.Read))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, r.Close())
}

func TestDirectStreamCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "payload.bin")
	w, err := OpenWrite(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("x"))
	assert.True(t, errs.Is(err, errs.AlreadyClosed))

	err = w.Flush()
	assert.True(t, errs.Is(err, errs.AlreadyClosed))
}

func TestDirectStreamFlushCoalescesConcurrentCallers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "payload.bin")
	w, err := OpenWrite(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- w.Flush()
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestDirectStreamLengthReflectsWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "payload.bin")
	w, err := OpenWrite(path)
	require.NoError(t, err)

	chunks := [][]byte{[]byte("abc"), []byte("defgh"), []byte("i")}
	total := 0
	for _, c := range chunks {
		n, err := w.Write(c)
		require.NoError(t, err)
		total += n
	}

	length, err := w.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(total), length)
	require.NoError(t, w.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(total), fi.Size())
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
