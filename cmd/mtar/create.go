package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type createOptions struct {
	append bool
}

func newCreateCommand(c *cli) *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create ARCHIVE FILE [FILE...]",
		Short: "Create an archive from a list of files",
		Long: `Create an archive with one entry per FILE.

Directories are stored as a single entry; their contents are not added
unless listed. Symbolic links are stored, not followed. Leading slashes are
removed from entry names.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCreate(c, args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.append, "append", "a", false, "Add to an existing archive instead of replacing it")
	return cmd
}

func runCreate(c *cli, path string, files []string, opts createOptions) (err error) {
	mode := "w"
	if opts.append {
		mode = "a"
	}
	a, err := c.open(path, mode)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	for _, file := range files {
		name, err := entryName(file)
		if err != nil {
			return err
		}
		if err := a.AddFile(name, file); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return a.Finalize()
}

// entryName derives the archive name for a host path.
func entryName(file string) (string, error) {
	name := filepath.ToSlash(filepath.Clean(file))
	name = strings.TrimLeft(name[len(filepath.VolumeName(file)):], "/")
	if name == "" || name == "." || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%s: cannot be stored as a relative entry name", file)
	}
	return name, nil
}
