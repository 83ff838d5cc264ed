// Package testutil provides test doubles for the archive engine and its backends.
package testutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/mtar/backend"
)

// ErrInjected is the default error returned by FaultBackend.
var ErrInjected = errors.New("testutil: injected failure")

// Pattern returns n bytes of a repeating, non-block-aligned pattern.
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

// EntryName returns the i-th generated entry name.
func EntryName(i int) string {
	return fmt.Sprintf("tmp/%d.txt", i)
}

// PartialRWS is an in-memory io.ReadWriteSeeker that moves at most Max
// bytes per Read or Write call.
type PartialRWS struct {
	Max   int
	Calls int

	data []byte
	off  int64

	failAt  int64
	failErr error
}

// NewPartialRWS returns a PartialRWS over data that makes at most max bytes of progress per call.
func NewPartialRWS(data []byte, maxPerCall int) *PartialRWS {
	return &PartialRWS{Max: maxPerCall, data: data}
}

// FailOnce makes the first Read or Write that would cross offset stop
// there and return err. Later calls behave normally.
func (p *PartialRWS) FailOnce(offset int64, err error) *PartialRWS {
	p.failAt, p.failErr = offset, err
	return p
}

// clip bounds b by Max and by a pending failure, reporting whether the
// failure fires on this call.
func (p *PartialRWS) clip(b []byte) ([]byte, error) {
	if len(b) > p.Max {
		b = b[:p.Max]
	}
	if p.failErr == nil || p.off+int64(len(b)) <= p.failAt {
		return b, nil
	}
	err := p.failErr
	p.failErr = nil
	return b[:max(0, p.failAt-p.off)], err
}

// Read implements io.Reader.
func (p *PartialRWS) Read(b []byte) (int, error) {
	p.Calls++
	if p.off >= int64(len(p.data)) {
		return 0, io.EOF
	}
	b, ferr := p.clip(b)
	n := copy(b, p.data[p.off:])
	p.off += int64(n)
	return n, ferr
}

// Write implements io.Writer.
func (p *PartialRWS) Write(b []byte) (int, error) {
	p.Calls++
	b, ferr := p.clip(b)
	end := p.off + int64(len(b))
	if end > int64(len(p.data)) {
		p.data = append(p.data, make([]byte, end-int64(len(p.data)))...)
	}
	n := copy(p.data[p.off:], b)
	p.off += int64(n)
	return n, ferr
}

// Seek implements io.Seeker for io.SeekStart only.
func (p *PartialRWS) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset < 0 {
		return 0, fmt.Errorf("testutil: unsupported seek %d/%d", offset, whence)
	}
	p.off = offset
	return offset, nil
}

// Bytes returns the backing slice.
func (p *PartialRWS) Bytes() []byte {
	return p.data
}

// Op names a Backend method.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
	OpSeek  Op = "seek"
	OpClose Op = "close"
)

// FaultBackend wraps a Backend, counts calls and can fail the n-th call of
// an operation.
type FaultBackend struct {
	backend.Backend

	// Err is returned for injected failures. Nil means ErrInjected.
	Err error

	Calls        map[Op]int
	BytesWritten int
	Closed       bool

	failAt map[Op]int
}

// NewFaultBackend wraps b.
func NewFaultBackend(b backend.Backend) *FaultBackend {
	return &FaultBackend{
		Backend: b,
		Calls:   make(map[Op]int),
		failAt:  make(map[Op]int),
	}
}

// FailAt makes the n-th call (1-based) of op fail.
func (f *FaultBackend) FailAt(op Op, n int) *FaultBackend {
	f.failAt[op] = n
	return f
}

func (f *FaultBackend) fault(op Op) error {
	f.Calls[op]++
	if n, ok := f.failAt[op]; ok && n == f.Calls[op] {
		if f.Err != nil {
			return f.Err
		}
		return ErrInjected
	}
	return nil
}

// Read implements backend.Backend.
func (f *FaultBackend) Read(p []byte) error {
	if err := f.fault(OpRead); err != nil {
		return err
	}
	return f.Backend.Read(p)
}

// Write implements backend.Backend.
func (f *FaultBackend) Write(p []byte) error {
	if err := f.fault(OpWrite); err != nil {
		return err
	}
	if err := f.Backend.Write(p); err != nil {
		return err
	}
	f.BytesWritten += len(p)
	return nil
}

// Seek implements backend.Backend.
func (f *FaultBackend) Seek(offset uint64) error {
	if err := f.fault(OpSeek); err != nil {
		return err
	}
	return f.Backend.Seek(offset)
}

// Close implements backend.Backend.
func (f *FaultBackend) Close() error {
	f.Closed = true
	if err := f.fault(OpClose); err != nil {
		return err
	}
	return f.Backend.Close()
}
