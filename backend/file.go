package backend

import (
	"fmt"
	"os"

	"github.com/moby/sys/sequential"
)

// OpenFile opens the named file as a Stream.
//
// ModeRead opens read-only. ModeWrite creates or truncates. ModeAppend opens
// read-write, creating the file if needed; the archive layer positions itself
// over the existing terminator.
func OpenFile(name string, mode Mode, opts ...StreamOption) (*Stream, error) {
	var flag int
	switch mode {
	case ModeRead:
		flag = os.O_RDONLY
	case ModeWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		flag = os.O_RDWR | os.O_CREATE
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	f, err := sequential.OpenFile(name, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return NewStream(f, opts...), nil
}
