//go:build linux

package stream

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	ioprioWhoProcess = 1
	ioprioClassShift = 13
	ioprioClassRT    = 1
	ioprioRTLevel    = 0
	ioprioClassBE    = 2
	ioprioBELevel    = 0
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

// onOpen applies best-effort construction-time hints: raise this process's
// I/O scheduling class to real-time (falling back to best-effort when that is
// refused) and advise the kernel that access to fd is sequential. Neither
// hint failing is fatal to the stream.
func onOpen(f *os.File) {
	fd := int(f.Fd())

	ioprio := ioprioClassRT<<ioprioClassShift | ioprioRTLevel
	if _, _, errno := unix.Syscall(unix.SYS_IOPRIO_SET, uintptr(ioprioWhoProcess), 0, uintptr(ioprio)); errno != 0 {
		bePrio := ioprioClassBE<<ioprioClassShift | ioprioBELevel
		if _, _, beErrno := unix.Syscall(unix.SYS_IOPRIO_SET, uintptr(ioprioWhoProcess), 0, uintptr(bePrio)); beErrno != 0 {
			warnf(opDirectStream, "ioprio_set", beErrno)
		}
	}

	if err := unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL); err != nil {
		warnf(opDirectStream, "fadvise_sequential", err)
	}
}

// durableFlush issues fsync followed by a DONTNEED advisory so that pages
// already written back to disk are dropped from the page cache instead of
// lingering.
func durableFlush(f *os.File) error {
	fd := int(f.Fd())

	if err := unix.Fsync(fd); err != nil {
		return err
	}
	if err := unix.Fadvise(fd, 0, 0, unix.FADV_DONTNEED); err != nil {
		warnf(opDirectStream, "fadvise_dontneed", err)
	}
	return nil
}
