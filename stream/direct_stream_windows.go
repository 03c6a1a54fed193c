//go:build windows

package stream

import (
	"os"

	"golang.org/x/sys/windows"
)

func openReadFile(path string) (*os.File, error) {
	return openWithFlags(path, windows.GENERIC_READ, windows.OPEN_EXISTING,
		windows.FILE_FLAG_SEQUENTIAL_SCAN)
}

func openWriteFile(path string) (*os.File, error) {
	return openWithFlags(path, windows.GENERIC_WRITE, windows.CREATE_ALWAYS,
		windows.FILE_FLAG_SEQUENTIAL_SCAN|windows.FILE_FLAG_WRITE_THROUGH)
}

// openWithFlags opens path via the raw CreateFile API since os.OpenFile has
// no way to request FILE_FLAG_WRITE_THROUGH or FILE_FLAG_SEQUENTIAL_SCAN.
func openWithFlags(path string, access uint32, disposition uint32, flags uint32) (*os.File, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateFile(
		p,
		access,
		windows.FILE_SHARE_READ,
		nil,
		disposition,
		flags|windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, err
	}

	return os.NewFile(uintptr(h), path), nil
}

// onOpen is a no-op on Windows: the sequential and write-through hints are
// requested at CreateFile time via openWithFlags.
func onOpen(*os.File) {}

func durableFlush(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
