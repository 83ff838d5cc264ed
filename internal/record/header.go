package record

import (
	"io/fs"
	"path"
	"time"
)

const (
	// BlockSize is the record size and the payload alignment unit.
	BlockSize = 512

	// MaxSize is the largest payload the 12-byte octal size field can hold (077777777777).
	MaxSize = 0x1FFFFFFFF

	// MaxNameLen is the longest name or linkname that leaves room for a terminating NUL.
	MaxNameLen = 99
)

// TypeFlag selects the kind of an archive entry.
type TypeFlag byte

// Entry kinds.
const (
	TypeReg     TypeFlag = '0'
	TypeLink    TypeFlag = '1'
	TypeSymlink TypeFlag = '2'
	TypeChar    TypeFlag = '3'
	TypeBlock   TypeFlag = '4'
	TypeDir     TypeFlag = '5'
	TypeFIFO    TypeFlag = '6'
)

// String returns a short human-readable name for the entry kind.
func (t TypeFlag) String() string {
	switch t {
	case TypeReg, 0:
		return "file"
	case TypeLink:
		return "hardlink"
	case TypeSymlink:
		return "symlink"
	case TypeChar:
		return "char"
	case TypeBlock:
		return "block"
	case TypeDir:
		return "dir"
	case TypeFIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// Header is the decoded metadata of one archive entry.
type Header struct {
	// Mode holds the POSIX permission bits.
	Mode uint64

	// Owner is the owner's user ID.
	Owner uint64

	// Size is the payload length in bytes. It is zero for directories.
	Size uint64

	// Mtime is the modification time in seconds since the Unix epoch.
	Mtime uint64

	// Typeflag selects the entry kind. The zero value is written as TypeReg.
	Typeflag TypeFlag

	// Name is the entry path, at most MaxNameLen bytes.
	Name string

	// Linkname is the link target for link entries, at most MaxNameLen bytes.
	Linkname string
}

// ModTime returns Mtime as a time.Time.
func (h *Header) ModTime() time.Time {
	return time.Unix(int64(h.Mtime), 0) //nolint:gosec // decoded mtime is at most 36 bits
}

// FileInfo returns an fs.FileInfo describing the header.
func (h *Header) FileInfo() fs.FileInfo {
	return headerFileInfo{h}
}

const (
	modeSUID   = 0o4000
	modeSGID   = 0o2000
	modeSticky = 0o1000
)

type headerFileInfo struct {
	h *Header
}

func (fi headerFileInfo) Size() int64        { return int64(fi.h.Size) } //nolint:gosec // bounded by MaxSize
func (fi headerFileInfo) ModTime() time.Time { return fi.h.ModTime() }
func (fi headerFileInfo) IsDir() bool        { return fi.Mode().IsDir() }
func (fi headerFileInfo) Sys() any           { return fi.h }

// Name returns the base name of the entry.
func (fi headerFileInfo) Name() string {
	if fi.IsDir() {
		return path.Base(path.Clean(fi.h.Name))
	}
	return path.Base(fi.h.Name)
}

// Mode returns the permission and type bits for the entry.
func (fi headerFileInfo) Mode() fs.FileMode {
	mode := fs.FileMode(fi.h.Mode).Perm() //nolint:gosec // only the low bits are kept

	if fi.h.Mode&modeSUID != 0 {
		mode |= fs.ModeSetuid
	}
	if fi.h.Mode&modeSGID != 0 {
		mode |= fs.ModeSetgid
	}
	if fi.h.Mode&modeSticky != 0 {
		mode |= fs.ModeSticky
	}

	switch fi.h.Typeflag {
	case TypeDir:
		mode |= fs.ModeDir
	case TypeSymlink:
		mode |= fs.ModeSymlink
	case TypeChar:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case TypeBlock:
		mode |= fs.ModeDevice
	case TypeFIFO:
		mode |= fs.ModeNamedPipe
	}
	return mode
}

// RoundUp rounds n up to the next multiple of BlockSize.
func RoundUp(n uint64) uint64 {
	return n + ((BlockSize - n%BlockSize) % BlockSize)
}
