package record

import "errors"

var (
	// ErrBadChecksum is returned when a record's stored checksum does not match its contents.
	ErrBadChecksum = errors.New("mtar: bad checksum")

	// ErrNullRecord is returned when a record is a sentinel (end of archive or unused block).
	ErrNullRecord = errors.New("mtar: null record")

	// ErrFieldTooLong is returned when a header value does not fit its record field.
	ErrFieldTooLong = errors.New("mtar: header field too long")

	// ErrInvalidField is returned when a header value cannot be represented in its field.
	ErrInvalidField = errors.New("mtar: invalid header field")

	// ErrSizeLimit is returned when a payload size exceeds MaxSize.
	ErrSizeLimit = errors.New("mtar: size exceeds 33-bit octal limit")
)
