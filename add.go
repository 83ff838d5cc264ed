package mtar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/meigma/mtar/internal/platform"
)

// FileInfoHeader builds a header for fi stored under name.
//
// link is the target recorded for symbolic links and ignored otherwise.
// Directory names get a trailing slash. The owner is the file's UID where
// the platform reports one. File types the format cannot hold return
// ErrUnsupportedType.
func FileInfoHeader(fi fs.FileInfo, name, link string) (*Header, error) {
	h := &Header{
		Name:  name,
		Mode:  uint64(fi.Mode().Perm()),
		Owner: uint64(platform.FileOwner(fi)),
	}
	if fi.Mode()&fs.ModeSetuid != 0 {
		h.Mode |= 0o4000
	}
	if fi.Mode()&fs.ModeSetgid != 0 {
		h.Mode |= 0o2000
	}
	if fi.Mode()&fs.ModeSticky != 0 {
		h.Mode |= 0o1000
	}
	if mt := fi.ModTime().Unix(); mt > 0 {
		h.Mtime = uint64(mt)
	}

	switch m := fi.Mode(); {
	case m.IsRegular():
		h.Typeflag = TypeReg
		h.Size = uint64(fi.Size()) //nolint:gosec // regular file sizes are non-negative
	case m.IsDir():
		h.Typeflag = TypeDir
		if !strings.HasSuffix(name, "/") {
			h.Name += "/"
		}
	case m&fs.ModeSymlink != 0:
		h.Typeflag = TypeSymlink
		h.Linkname = link
	case m&fs.ModeNamedPipe != 0:
		h.Typeflag = TypeFIFO
	case m&fs.ModeCharDevice != 0:
		h.Typeflag = TypeChar
	case m&fs.ModeDevice != 0:
		h.Typeflag = TypeBlock
	default:
		return nil, fmt.Errorf("%w: %s is %v", ErrUnsupportedType, name, m.Type())
	}
	return h, nil
}

// AddFile writes the file at path as an entry named name.
//
// Regular files are written with their contents, directories as a single
// header (their contents are not added) and symbolic links with their
// target. Symbolic links are never followed. If a regular file changes
// while it is copied, ErrFileChanged is returned; a file that shrank leaves
// the entry incomplete.
func (a *Archive) AddFile(name, path string) error {
	if a.closed {
		return ErrClosed
	}

	info, err := os.Lstat(path)
	if err != nil {
		return ioError(ErrOpen, err)
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return ioError(ErrOpen, err)
		}
	}

	h, err := FileInfoHeader(info, name, link)
	if err != nil {
		return err
	}
	if h.Typeflag != TypeReg {
		return a.WriteHeader(h)
	}
	return a.addRegular(h, path, info)
}

func (a *Archive) addRegular(h *Header, path string, info fs.FileInfo) error {
	f, err := platform.OpenFileNoFollow(path)
	if err != nil {
		if errors.Is(err, platform.ErrSymlink) {
			return fmt.Errorf("%w: %s became a symbolic link", ErrFileChanged, path)
		}
		return ioError(ErrOpen, err)
	}
	defer f.Close()

	finfo, err := f.Stat()
	if err != nil {
		return ioError(ErrRead, err)
	}
	if !finfo.Mode().IsRegular() || !os.SameFile(info, finfo) || finfo.Size() != info.Size() {
		return fmt.Errorf("%w: %s", ErrFileChanged, path)
	}

	if err := a.WriteHeader(h); err != nil {
		return err
	}
	if _, err := io.CopyN(a.Writer(), f, info.Size()); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s shrank by %d bytes while being added", ErrFileChanged, path, a.remaining)
		}
		return err
	}
	var probe [1]byte
	if n, _ := f.Read(probe[:]); n > 0 {
		return fmt.Errorf("%w: %s grew while being added", ErrFileChanged, path)
	}
	a.log().Debug("file added", "name", h.Name, "size", h.Size)
	return nil
}
