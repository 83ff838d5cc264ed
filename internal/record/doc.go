// Package record encodes and decodes the fixed 512-byte tar metadata record.
//
// A record is laid out as
//
//	name(100) mode(8) owner(8) group(8) size(12) mtime(12)
//	checksum(8) typeflag(1) linkname(100) padding(255)
//
// Numeric fields hold NUL-padded ASCII octal. The checksum field is written as
// six octal digits, a NUL and a space. A record whose checksum field starts
// with NUL is a sentinel and decodes as ErrNullRecord.
package record
