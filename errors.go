package mtar

import (
	"errors"
	"fmt"

	"github.com/meigma/mtar/internal/record"
)

// Sentinel errors for I/O and cursor misuse.
var (
	// ErrFailure is returned for backend failures with no more specific class, such as Close.
	ErrFailure = errors.New("mtar: failure")

	// ErrOpen is returned when the backend cannot be opened.
	ErrOpen = errors.New("mtar: could not open")

	// ErrRead is returned when the backend cannot supply the requested bytes.
	ErrRead = errors.New("mtar: could not read")

	// ErrWrite is returned when the backend cannot accept the bytes written.
	ErrWrite = errors.New("mtar: could not write")

	// ErrSeek is returned when the backend cannot reposition.
	ErrSeek = errors.New("mtar: could not seek")

	// ErrNotFound is returned by Find when no entry has the requested name.
	ErrNotFound = errors.New("mtar: file not found")

	// ErrTooMuchData is returned when a read or write asks for more bytes than
	// remain in the current entry.
	ErrTooMuchData = errors.New("mtar: transfer exceeds remaining entry data")

	// ErrIncompleteEntry is returned when a header or the terminator is written
	// before the previous entry's payload is complete.
	ErrIncompleteEntry = errors.New("mtar: entry data incomplete")

	// ErrClosed is returned by operations on a closed archive.
	ErrClosed = errors.New("mtar: archive closed")

	// ErrUnsupportedType is returned by FileInfoHeader for file types the
	// format has no type flag for, such as sockets.
	ErrUnsupportedType = errors.New("mtar: unsupported file type")

	// ErrFileChanged is returned by AddFile when a file is modified or
	// replaced while it is being added.
	ErrFileChanged = errors.New("mtar: file changed during add")
)

// Format errors re-exported from internal/record.
var (
	// ErrBadChecksum is returned when a record's checksum does not match its contents.
	ErrBadChecksum = record.ErrBadChecksum

	// ErrNullRecord is returned when the record at the cursor is a sentinel.
	// It marks the end of the archive and is not a corruption.
	ErrNullRecord = record.ErrNullRecord

	// ErrFieldTooLong is returned when a header value does not fit its field.
	ErrFieldTooLong = record.ErrFieldTooLong

	// ErrInvalidField is returned when a header value cannot be represented.
	ErrInvalidField = record.ErrInvalidField

	// ErrSizeLimit is returned when a payload size exceeds MaxSize.
	ErrSizeLimit = record.ErrSizeLimit
)

// ioError tags a backend error with its operation class. Both the class and
// the backend's own error match errors.Is.
func ioError(class, err error) error {
	if errors.Is(err, class) {
		return err
	}
	return fmt.Errorf("%w: %w", class, err)
}

// Status is a numeric result code for callers that report outcomes as codes.
type Status int

// Status codes. Failures are negative.
const (
	StatusSuccess      Status = 0
	StatusFailure      Status = -1
	StatusOpenFailure  Status = -2
	StatusReadFailure  Status = -3
	StatusWriteFailure Status = -4
	StatusSeekFailure  Status = -5
	StatusBadChecksum  Status = -6
	StatusNullRecord   Status = -7
	StatusNotFound     Status = -8
)

// String returns the message for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusOpenFailure:
		return "could not open"
	case StatusReadFailure:
		return "could not read"
	case StatusWriteFailure:
		return "could not write"
	case StatusSeekFailure:
		return "could not seek"
	case StatusBadChecksum:
		return "bad checksum"
	case StatusNullRecord:
		return "null record"
	case StatusNotFound:
		return "file not found"
	default:
		return "unknown error"
	}
}

// StatusOf classifies err. Errors without a dedicated code are StatusFailure.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrNullRecord):
		return StatusNullRecord
	case errors.Is(err, ErrBadChecksum):
		return StatusBadChecksum
	case errors.Is(err, ErrOpen):
		return StatusOpenFailure
	case errors.Is(err, ErrRead):
		return StatusReadFailure
	case errors.Is(err, ErrWrite):
		return StatusWriteFailure
	case errors.Is(err, ErrSeek):
		return StatusSeekFailure
	default:
		return StatusFailure
	}
}
