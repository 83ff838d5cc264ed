package mtar

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/meigma/mtar/internal/record"
	"github.com/meigma/mtar/internal/sizing"
)

// ReadHeader decodes the record at the current position and leaves the
// stream positioned at the start of that record.
//
// ErrNullRecord is returned at the archive terminator.
func (a *Archive) ReadHeader() (*Header, error) {
	if a.closed {
		return nil, ErrClosed
	}
	a.lastHeader = a.pos

	var raw record.Raw
	if err := a.read(raw[:]); err != nil {
		return nil, err
	}
	if err := a.Seek(a.lastHeader); err != nil {
		return nil, err
	}

	h, err := record.Decode(&raw)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ReadData reads exactly len(p) payload bytes of the entry at the cursor.
//
// The first call for an entry reads its header and moves to the payload;
// later calls continue where the previous one stopped. Once the whole payload
// has been read the stream returns to the entry's record, so ReadHeader and
// Next work without repositioning. Asking for more than remains returns
// ErrTooMuchData without transferring anything.
func (a *Archive) ReadData(p []byte) error {
	if a.closed {
		return ErrClosed
	}
	n := sizing.Len(p)

	if a.remaining == 0 {
		h, err := a.ReadHeader()
		if err != nil {
			return err
		}
		if n > h.Size {
			return fmt.Errorf("%w: read of %d bytes, %q holds %d", ErrTooMuchData, n, h.Name, h.Size)
		}
		if err := a.Seek(a.pos + record.BlockSize); err != nil {
			return err
		}
		a.remaining = h.Size
	} else if n > a.remaining {
		return fmt.Errorf("%w: read of %d bytes, %d remain", ErrTooMuchData, n, a.remaining)
	}

	if err := a.read(p); err != nil {
		return err
	}
	a.remaining -= n

	if a.remaining == 0 {
		return a.Seek(a.lastHeader)
	}
	return nil
}

// Entries rewinds and yields every header up to the terminator, in archive
// order. Iteration stops at the first error, which is yielded.
//
// The loop body may read the yielded entry's payload with ReadData or Reader;
// the next header is located from the yielded record regardless of how much
// of the payload was consumed.
func (a *Archive) Entries() iter.Seq2[*Header, error] {
	return func(yield func(*Header, error) bool) {
		if err := a.Rewind(); err != nil {
			yield(nil, err)
			return
		}
		for {
			h, err := a.ReadHeader()
			if errors.Is(err, ErrNullRecord) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			off := a.lastHeader
			if !yield(h, nil) {
				return
			}
			a.remaining = 0
			if err := a.seekPast(off, h); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// OpenEntry finds the entry named name and returns its header and a reader
// over its payload.
func (a *Archive) OpenEntry(name string) (*Header, io.Reader, error) {
	h, err := a.Find(name)
	if err != nil {
		return nil, nil, err
	}
	return h, a.Reader(h), nil
}

// Reader returns a reader over the payload of h, which must be the header
// at the cursor. Each Read is served by ReadData.
func (a *Archive) Reader(h *Header) io.Reader {
	return &entryReader{a: a, left: h.Size}
}

type entryReader struct {
	a    *Archive
	left uint64
}

func (r *entryReader) Read(p []byte) (int, error) {
	if r.left == 0 {
		return 0, io.EOF
	}
	if sizing.Len(p) > r.left {
		p = p[:r.left]
	}
	if err := r.a.ReadData(p); err != nil {
		return 0, err
	}
	r.left -= sizing.Len(p)
	return len(p), nil
}
