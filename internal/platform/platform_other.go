//go:build !unix

package platform

import (
	"io/fs"
	"os"
)

// FileOwner returns zero on non-Unix systems.
func FileOwner(fs.FileInfo) uint32 {
	return 0
}

// OpenFileNoFollow opens path read-only, refusing symbolic links. The check
// and the open are not atomic on these systems.
func OpenFileNoFollow(path string) (*os.File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, ErrSymlink
	}
	return os.Open(path) //nolint:gosec // caller-provided path is intentional
}
