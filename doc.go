// Package mtar reads and writes tar archives through a seekable cursor.
//
// An archive is a sequence of 512-byte metadata records, each followed by its
// payload padded to a 512-byte boundary, and ends with two all-zero records.
// [Archive] tracks the stream position, the offset of the last record read or
// written, and the payload bytes still to transfer for the current entry, so
// payloads can be read or written across many calls.
//
// Only the classic record layout is supported: names and link targets are
// limited to 99 bytes, payloads to [MaxSize] bytes, and there is no
// compression or extended header support.
//
// # Writing
//
//	a, err := mtar.OpenFile("out.tar", "w")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	if err := a.WriteFileHeader("hello.txt", 5); err != nil {
//	    return err
//	}
//	if err := a.WriteData([]byte("hello")); err != nil {
//	    return err
//	}
//	return a.Finalize()
//
// # Reading
//
//	a, err := mtar.OpenFile("out.tar", "r")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	h, err := a.Find("hello.txt")
//	if err != nil {
//	    return err
//	}
//	buf := make([]byte, h.Size)
//	err = a.ReadData(buf)
//
// # Backends
//
// I/O goes through the [backend.Backend] interface. [backend.OpenFile] and
// [backend.NewStream] provide the file-backed implementation and
// [backend.NewMemory] an in-memory one; any type honoring the
// exact-count contract can be passed to [Open].
package mtar
