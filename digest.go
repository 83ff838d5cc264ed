package mtar

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Digest returns the canonical (sha256) digest of the payload of the entry
// named name.
func (a *Archive) Digest(name string) (digest.Digest, error) {
	h, r, err := a.OpenEntry(name)
	if err != nil {
		return "", err
	}
	d := digest.Canonical.Digester()
	n, err := io.Copy(d.Hash(), r)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", h.Name, err)
	}
	if uint64(n) != h.Size { //nolint:gosec // io.Copy never returns a negative count
		return "", fmt.Errorf("digest %s: %w", h.Name, io.ErrUnexpectedEOF)
	}
	return d.Digest(), nil
}

// Describe reads r to the end and returns an OCI layer descriptor for it.
// The content is not validated; use DescribeFile for archives on disk.
func Describe(r io.Reader) (ocispec.Descriptor, error) {
	cr := &countingReader{r: r}
	dgst, err := digest.Canonical.FromReader(cr)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	return ocispec.Descriptor{
		MediaType: ocispec.MediaTypeImageLayer,
		Digest:    dgst,
		Size:      cr.n,
	}, nil
}

// DescribeFile validates that the named file starts with a well-formed
// record and returns its OCI layer descriptor.
func DescribeFile(name string) (ocispec.Descriptor, error) {
	a, err := OpenFile(name, "r")
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	if err := a.Close(); err != nil {
		return ocispec.Descriptor{}, err
	}

	f, err := os.Open(name) //nolint:gosec // caller-provided path is intentional
	if err != nil {
		return ocispec.Descriptor{}, ioError(ErrOpen, err)
	}
	desc, err := Describe(f)
	return desc, errors.Join(err, f.Close())
}

// countingReader wraps a reader and counts bytes read.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
