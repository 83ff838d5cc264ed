//go:build unix

package platform

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// FileOwner extracts the UID from file info on Unix systems.
func FileOwner(info fs.FileInfo) uint32 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Uid
	}
	return 0
}

// OpenFileNoFollow opens path read-only without following a final symbolic link.
func OpenFileNoFollow(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, ErrSymlink
		}
		return nil, err
	}
	return f, nil
}
