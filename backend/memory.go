package backend

import (
	"fmt"
	"io"
	"os"

	"github.com/meigma/mtar/internal/sizing"
)

// Memory is a growable in-memory Backend.
//
// A failed Read leaves the offset unchanged. Writing past the end grows the
// buffer, zero-filling any gap left by a Seek.
type Memory struct {
	buf    []byte
	off    int
	closed bool
}

// NewMemory returns a Memory whose initial contents are data.
// The slice is used directly, not copied.
func NewMemory(data []byte) *Memory {
	return &Memory{buf: data}
}

// Read fills p from the current offset.
func (m *Memory) Read(p []byte) error {
	if m.closed {
		return os.ErrClosed
	}
	if len(p) == 0 {
		return nil
	}
	avail := len(m.buf) - m.off
	if avail < len(p) {
		if avail <= 0 {
			return io.EOF
		}
		return fmt.Errorf("read %d of %d bytes: %w", avail, len(p), io.ErrUnexpectedEOF)
	}
	m.off += copy(p, m.buf[m.off:])
	return nil
}

// Write stores p at the current offset.
func (m *Memory) Write(p []byte) error {
	if m.closed {
		return os.ErrClosed
	}
	end := m.off + len(p)
	if end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	m.off += copy(m.buf[m.off:], p)
	return nil
}

// Seek moves to the absolute offset. Offsets past the end are allowed.
func (m *Memory) Seek(offset uint64) error {
	if m.closed {
		return os.ErrClosed
	}
	off, err := sizing.ToInt(offset, ErrOffsetOverflow)
	if err != nil {
		return err
	}
	m.off = off
	return nil
}

// Close marks the buffer closed. The contents stay available through Bytes.
func (m *Memory) Close() error {
	if m.closed {
		return os.ErrClosed
	}
	m.closed = true
	return nil
}

// Bytes returns the backing slice.
func (m *Memory) Bytes() []byte {
	return m.buf
}

// Len returns the number of bytes stored.
func (m *Memory) Len() int {
	return len(m.buf)
}
