// Package backend defines the byte-stream contract the archive engine drives
// and ships two implementations: Stream, which performs bounded-chunk
// transfers over any io.ReadWriteSeeker (files included), and Memory, an
// in-memory buffer for embedding and deterministic tests.
package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Backend is the I/O provider behind an archive.
//
// Read and Write must transfer exactly len(p) bytes or return an error; a
// short transfer is never success. Seek takes an absolute offset.
type Backend interface {
	Read(p []byte) error
	Write(p []byte) error
	Seek(offset uint64) error
	Close() error
}

// Mode selects how an archive is opened.
type Mode uint8

const (
	ModeRead Mode = iota
	ModeWrite
	ModeAppend
)

// String returns the fopen-style letter for the mode.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWrite:
		return "w"
	case ModeAppend:
		return "a"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidMode is returned by ParseMode for strings naming no known mode.
	ErrInvalidMode = errors.New("backend: invalid mode")

	// ErrOffsetOverflow is returned when an offset does not fit the platform's offset type.
	ErrOffsetOverflow = errors.New("backend: offset overflow")
)

// ParseMode parses an fopen-style mode string. Files are always opened in
// binary mode, so "b" and "+" are accepted and ignored. When several letters
// are present, "w" overrides "r" and "a" overrides both.
func ParseMode(s string) (Mode, error) {
	var (
		m  Mode
		ok bool
	)
	if strings.ContainsRune(s, 'r') {
		m, ok = ModeRead, true
	}
	if strings.ContainsRune(s, 'w') {
		m, ok = ModeWrite, true
	}
	if strings.ContainsRune(s, 'a') {
		m, ok = ModeAppend, true
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
