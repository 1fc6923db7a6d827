//go:build unix

package source

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, bool, error) {
	b, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, false, err
	}
	// Resources are read a few at a time from all over the image
	if err := unix.Madvise(b, unix.MADV_RANDOM); err != nil && err != syscall.ENOSYS {
		unix.Munmap(b)
		return nil, false, fmt.Errorf("madvise(MADV_RANDOM): %w", err)
	}
	return b, true, nil
}

func unmapFile(b []byte, mapped bool) error {
	if !mapped {
		return nil
	}
	return unix.Munmap(b)
}
