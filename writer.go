package mtar

import (
	"fmt"
	"io"

	"github.com/meigma/mtar/internal/record"
	"github.com/meigma/mtar/internal/sizing"
)

// zeroBlock supplies payload padding and the two terminator records.
var zeroBlock [2 * record.BlockSize]byte

// WriteHeader writes the record for h and expects h.Size payload bytes next.
//
// Header values that do not fit the record are rejected before anything is
// written. ErrIncompleteEntry is returned while the previous entry still has
// payload outstanding.
func (a *Archive) WriteHeader(h *Header) error {
	if a.closed {
		return ErrClosed
	}
	if a.remaining != 0 {
		return fmt.Errorf("%w: %d bytes of the previous entry unwritten", ErrIncompleteEntry, a.remaining)
	}

	raw, err := record.Encode(h)
	if err != nil {
		return err
	}

	off := a.pos
	if err := a.write(raw[:]); err != nil {
		return err
	}
	a.lastHeader = off
	a.remaining = h.Size
	return nil
}

// WriteFileHeader writes a regular file header with DefaultFileMode.
func (a *Archive) WriteFileHeader(name string, size uint64) error {
	return a.WriteHeader(&Header{
		Name:     name,
		Size:     size,
		Typeflag: TypeReg,
		Mode:     DefaultFileMode,
	})
}

// WriteDirHeader writes a directory header with DefaultDirMode.
func (a *Archive) WriteDirHeader(name string) error {
	return a.WriteHeader(&Header{
		Name:     name,
		Typeflag: TypeDir,
		Mode:     DefaultDirMode,
	})
}

// WriteData writes p as the next payload bytes of the current entry.
//
// When the payload is complete the stream is padded with NULs to the next
// block boundary. Writing more than remains returns ErrTooMuchData without
// writing anything.
func (a *Archive) WriteData(p []byte) error {
	if a.closed {
		return ErrClosed
	}
	n := sizing.Len(p)
	if n > a.remaining {
		return fmt.Errorf("%w: write of %d bytes, %d remain", ErrTooMuchData, n, a.remaining)
	}

	if err := a.write(p); err != nil {
		return err
	}
	a.remaining -= n

	if a.remaining == 0 {
		return a.write(zeroBlock[:record.RoundUp(a.pos)-a.pos])
	}
	return nil
}

// Writer returns an io.Writer over WriteData for the current entry.
func (a *Archive) Writer() io.Writer {
	return entryWriter{a}
}

type entryWriter struct {
	a *Archive
}

func (w entryWriter) Write(p []byte) (int, error) {
	if err := w.a.WriteData(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize writes the archive terminator: two all-zero records.
func (a *Archive) Finalize() error {
	if a.closed {
		return ErrClosed
	}
	if a.remaining != 0 {
		return fmt.Errorf("%w: %d bytes of the last entry unwritten", ErrIncompleteEntry, a.remaining)
	}
	if err := a.write(zeroBlock[:]); err != nil {
		return err
	}
	a.log().Debug("archive finalized", "size", a.pos)
	return nil
}
