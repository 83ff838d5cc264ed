package main

import (
	"errors"
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/meigma/mtar"
)

type listOptions struct {
	long bool
}

func newListCommand(c *cli) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list ARCHIVE",
		Aliases: []string{"ls"},
		Short:   "List the entries of an archive",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runList(c, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "Show mode, owner, size and modification time")
	return cmd
}

func runList(c *cli, path string, opts listOptions) (err error) {
	a, err := c.open(path, "r")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	for h, err := range a.Entries() {
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !opts.long {
			fmt.Fprintln(c.out, h.Name)
			continue
		}
		fmt.Fprintln(c.out, longEntry(h))
	}
	return nil
}

// longEntry formats h the way ls -l does, with a human-readable size.
func longEntry(h *mtar.Header) string {
	name := h.Name
	if h.Typeflag == mtar.TypeSymlink || h.Typeflag == mtar.TypeLink {
		name += " -> " + h.Linkname
	}
	return fmt.Sprintf("%s %6d %9s %s %s",
		h.FileInfo().Mode(),
		h.Owner,
		units.HumanSize(float64(h.Size)),
		h.ModTime().UTC().Format("2006-01-02 15:04"),
		name,
	)
}
