package mtar

import (
	"github.com/meigma/mtar/backend"
	"github.com/meigma/mtar/internal/record"
)

// --- Re-exports from internal/record ---

// Header is the metadata of one archive entry.
type Header = record.Header

// TypeFlag selects the kind of an archive entry.
type TypeFlag = record.TypeFlag

// Entry kinds.
const (
	TypeReg     = record.TypeReg
	TypeLink    = record.TypeLink
	TypeSymlink = record.TypeSymlink
	TypeChar    = record.TypeChar
	TypeBlock   = record.TypeBlock
	TypeDir     = record.TypeDir
	TypeFIFO    = record.TypeFIFO
)

// Format limits.
const (
	// BlockSize is the record size and payload alignment unit.
	BlockSize = record.BlockSize

	// MaxSize is the largest payload a record can declare (0x1FFFFFFFF bytes).
	MaxSize = record.MaxSize

	// MaxNameLen is the longest name or linkname a record can hold.
	MaxNameLen = record.MaxNameLen
)

// --- Re-exports from backend ---

// Mode selects how an archive is opened.
type Mode = backend.Mode

// Open modes.
const (
	ModeRead   = backend.ModeRead
	ModeWrite  = backend.ModeWrite
	ModeAppend = backend.ModeAppend
)

// Default modes for the convenience header writers.
const (
	DefaultFileMode = 0o664
	DefaultDirMode  = 0o775
)
