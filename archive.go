package mtar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/meigma/mtar/backend"
	"github.com/meigma/mtar/internal/record"
	"github.com/meigma/mtar/internal/sizing"
)

// Archive is a cursor over one tar stream.
//
// It tracks the stream position, the offset of the most recently read or
// written record, and how many payload bytes of the current entry are still
// to be transferred. An Archive owns its backend and is not safe for
// concurrent use.
type Archive struct {
	b          backend.Backend
	pos        uint64
	remaining  uint64
	lastHeader uint64
	closed     bool
	logger     *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Open binds an Archive to b.
//
// In ModeRead the first record is read and validated; if that fails, b is
// closed and the error returned. In ModeAppend the cursor is placed at the
// archive terminator (or the end of the stream) so new entries replace it.
func Open(b backend.Backend, mode Mode, opts ...Option) (*Archive, error) {
	cfg := newConfig(opts)
	a := &Archive{b: b, logger: cfg.logger}

	var err error
	switch mode {
	case ModeRead:
		_, err = a.ReadHeader()
	case ModeWrite:
	case ModeAppend:
		err = a.seekEnd()
	default:
		err = fmt.Errorf("%w: %w: %d", ErrOpen, backend.ErrInvalidMode, mode)
	}
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	a.log().Debug("archive opened", "mode", mode.String(), "position", a.pos)
	return a, nil
}

// OpenFile opens the named file with an fopen-style mode ("r", "w" or "a";
// files are always binary) and binds an Archive to it.
func OpenFile(name, mode string, opts ...Option) (*Archive, error) {
	m, err := backend.ParseMode(mode)
	if err != nil {
		return nil, ioError(ErrOpen, err)
	}
	cfg := newConfig(opts)
	b, err := backend.OpenFile(name, m, cfg.streamOpts...)
	if err != nil {
		return nil, ioError(ErrOpen, err)
	}
	return Open(b, m, opts...)
}

// Close releases the backend. Later calls return ErrClosed.
func (a *Archive) Close() error {
	if a.closed {
		return ErrClosed
	}
	a.closed = true
	if err := a.b.Close(); err != nil {
		return ioError(ErrFailure, err)
	}
	return nil
}

// Position returns the current stream offset.
func (a *Archive) Position() uint64 { return a.pos }

// Remaining returns the payload bytes of the current entry not yet transferred.
// Zero means the cursor is between entries.
func (a *Archive) Remaining() uint64 { return a.remaining }

// LastHeaderOffset returns the offset of the most recently read or written record.
func (a *Archive) LastHeaderOffset() uint64 { return a.lastHeader }

// Seek moves the stream to the absolute offset pos.
func (a *Archive) Seek(pos uint64) error {
	if a.closed {
		return ErrClosed
	}
	if err := a.b.Seek(pos); err != nil {
		return ioError(ErrSeek, err)
	}
	a.pos = pos
	return nil
}

// Rewind returns to the start of the archive and forgets any entry in progress.
func (a *Archive) Rewind() error {
	if a.closed {
		return ErrClosed
	}
	a.remaining = 0
	a.lastHeader = 0
	return a.Seek(0)
}

// Next moves the cursor from the record at the current position to the
// record that follows its payload.
func (a *Archive) Next() error {
	h, err := a.ReadHeader()
	if err != nil {
		return err
	}
	return a.seekPast(a.lastHeader, h)
}

// Find rewinds and scans for the entry named name. The cursor is left at
// the matching record, ready for ReadData. ErrNotFound is returned when the
// terminator is reached first; any other error stops the scan unchanged.
func (a *Archive) Find(name string) (*Header, error) {
	if err := a.Rewind(); err != nil {
		return nil, err
	}
	for {
		h, err := a.ReadHeader()
		if err != nil {
			if errors.Is(err, ErrNullRecord) {
				a.log().Debug("entry not found", "name", name)
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, err
		}
		if h.Name == name {
			a.log().Debug("entry found", "name", name, "offset", a.lastHeader)
			return h, nil
		}
		if err := a.seekPast(a.lastHeader, h); err != nil {
			return nil, err
		}
	}
}

// seekPast moves to the record after the entry h whose record sits at off.
func (a *Archive) seekPast(off uint64, h *Header) error {
	next, ok := sizing.AddUint64(off, record.RoundUp(h.Size)+record.BlockSize)
	if !ok {
		return fmt.Errorf("%w: entry %q at %d overflows the offset range", ErrSeek, h.Name, off)
	}
	return a.Seek(next)
}

// seekEnd places the cursor over the terminator, or at the end of the
// stream when there is none.
func (a *Archive) seekEnd() error {
	for {
		h, err := a.ReadHeader()
		switch {
		case err == nil:
			if err := a.seekPast(a.lastHeader, h); err != nil {
				return err
			}
		case errors.Is(err, ErrNullRecord), errors.Is(err, io.EOF):
			a.log().Debug("append position", "offset", a.lastHeader)
			return a.Seek(a.lastHeader)
		default:
			return err
		}
	}
}

// read fills p from the backend and advances the position.
func (a *Archive) read(p []byte) error {
	if err := a.b.Read(p); err != nil {
		a.restore("read")
		return ioError(ErrRead, err)
	}
	a.pos += sizing.Len(p)
	return nil
}

// restore puts the backend back at the tracked position after a failed
// transfer that may have moved it part of the way.
func (a *Archive) restore(op string) {
	if err := a.b.Seek(a.pos); err != nil {
		a.log().Debug("restore position after failed "+op, "offset", a.pos, "error", err)
	}
}

// write sends p to the backend and advances the position.
func (a *Archive) write(p []byte) error {
	if err := a.b.Write(p); err != nil {
		a.restore("write")
		return ioError(ErrWrite, err)
	}
	a.pos += sizing.Len(p)
	return nil
}
