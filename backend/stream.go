package backend

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/mtar/internal/sizing"
)

// DefaultChunkSize is the largest transfer Stream hands to the underlying
// reader or writer in one call.
const DefaultChunkSize = 4096

// Stream is the reference Backend. It loops over an io.ReadWriteSeeker in
// bounded chunks until a transfer is complete or the provider fails, so
// providers that only make partial progress per call are tolerated. Errors
// are never retried.
type Stream struct {
	rws       io.ReadWriteSeeker
	chunkSize int
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithChunkSize sets the per-call transfer bound.
// Values <= 0 use DefaultChunkSize.
func WithChunkSize(n int) StreamOption {
	return func(s *Stream) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		s.chunkSize = n
	}
}

// NewStream returns a Stream over rws. Close closes rws if it implements io.Closer.
func NewStream(rws io.ReadWriteSeeker, opts ...StreamOption) *Stream {
	s := &Stream{rws: rws, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read fills p entirely.
func (s *Stream) Read(p []byte) error {
	done := 0
	for done < len(p) {
		end := min(done+s.chunkSize, len(p))
		n, err := s.rws.Read(p[done:end])
		done += n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if done == len(p) {
				return nil
			}
			if done == 0 {
				return io.EOF
			}
			return fmt.Errorf("read %d of %d bytes: %w", done, len(p), io.ErrUnexpectedEOF)
		}
		if n == 0 {
			return io.ErrNoProgress
		}
	}
	return nil
}

// Write writes all of p.
func (s *Stream) Write(p []byte) error {
	done := 0
	for done < len(p) {
		end := min(done+s.chunkSize, len(p))
		n, err := s.rws.Write(p[done:end])
		done += n
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("wrote %d of %d bytes: %w", done, len(p), io.ErrShortWrite)
		}
	}
	return nil
}

// Seek moves to the absolute offset.
func (s *Stream) Seek(offset uint64) error {
	off, err := sizing.ToInt64(offset, ErrOffsetOverflow)
	if err != nil {
		return err
	}
	_, err = s.rws.Seek(off, io.SeekStart)
	return err
}

// Close closes the underlying stream when it is closable.
func (s *Stream) Close() error {
	if c, ok := s.rws.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
