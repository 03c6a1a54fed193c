//go:build darwin

package stream

import (
	"os"

	"golang.org/x/sys/unix"
)

func openReadFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	onOpen(f)
	return f, nil
}

func openWriteFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|os.O_SYNC, 0o600)
	if err != nil {
		return nil, err
	}
	onOpen(f)
	return f, nil
}

// onOpen asks the kernel to bypass the unified buffer cache for this
// descriptor; durableFlush still issues F_FULLFSYNC since F_NOCACHE alone
// does not guarantee the drive's own write cache has been flushed.
func onOpen(f *os.File) {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_NOCACHE, 1); err != nil {
		warnf(opDirectStream, "f_nocache", err)
	}
}

func durableFlush(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
