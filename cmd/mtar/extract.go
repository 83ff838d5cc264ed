package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"github.com/spf13/cobra"

	"github.com/meigma/mtar"
)

// errUnsafePath is returned for entry names or link targets that would
// resolve outside the destination directory.
var errUnsafePath = errors.New("path escapes the destination directory")

type extractOptions struct {
	dir string
}

func newExtractCommand(c *cli) *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract ARCHIVE [NAME...]",
		Short: "Extract entries into a directory",
		Long: `Extract the named entries, or every entry when no names are given.

Regular files are read completely before they are written, then replace any
existing file atomically. Symbolic and hard links must point inside the
destination. Device and FIFO entries are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExtract(c, args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "directory", "C", ".", "Destination directory")
	return cmd
}

func runExtract(c *cli, path string, names []string, opts extractOptions) (err error) {
	a, err := c.open(path, "r")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	x := &extractor{a: a, dir: opts.dir, logger: c.logger}
	if len(names) == 0 {
		for h, err := range a.Entries() {
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := x.extract(h); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		h, err := a.Find(name)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := x.extract(h); err != nil {
			return err
		}
	}
	return nil
}

type extractor struct {
	a      *mtar.Archive
	dir    string
	logger *slog.Logger
}

// extract writes the entry h, which must be the entry at the cursor.
func (x *extractor) extract(h *mtar.Header) error {
	rel, err := localPath(h.Name)
	if err != nil {
		return err
	}
	target := filepath.Join(x.dir, rel)
	x.logger.Debug("extracting", "name", h.Name, "type", h.Typeflag.String(), "target", target)

	switch h.Typeflag {
	case mtar.TypeDir:
		return os.MkdirAll(target, dirPerm(h))
	case mtar.TypeReg, 0:
		return x.extractFile(h, target)
	case mtar.TypeSymlink:
		if !filepath.IsLocal(filepath.FromSlash(h.Linkname)) {
			return fmt.Errorf("%s -> %s: %w", h.Name, h.Linkname, errUnsafePath)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.Symlink(h.Linkname, target)
	case mtar.TypeLink:
		src, err := localPath(h.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.Link(filepath.Join(x.dir, src), target)
	default:
		x.logger.Warn("skipping special file", "name", h.Name, "type", h.Typeflag.String())
		return nil
	}
}

func (x *extractor) extractFile(h *mtar.Header, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data := make([]byte, h.Size)
	if err := x.a.ReadData(data); err != nil {
		return fmt.Errorf("%s: %w", h.Name, err)
	}
	if err := atomicwriter.WriteFile(target, data, fs.FileMode(h.Mode).Perm()); err != nil { //nolint:gosec // mode bits are masked by Perm
		return err
	}
	return os.Chtimes(target, h.ModTime(), h.ModTime())
}

// localPath converts an entry name to a relative host path, rejecting names
// that are absolute or climb out of the destination.
func localPath(name string) (string, error) {
	p := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("%s: %w", name, errUnsafePath)
	}
	return p, nil
}

func dirPerm(h *mtar.Header) fs.FileMode {
	if perm := fs.FileMode(h.Mode).Perm(); perm != 0 { //nolint:gosec // mode bits are masked by Perm
		return perm
	}
	return 0o755
}
