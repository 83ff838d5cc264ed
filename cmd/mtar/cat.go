package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCatCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cat ARCHIVE NAME [NAME...]",
		Short: "Write entry contents to standard output",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCat(c, args[0], args[1:])
		},
	}
}

func runCat(c *cli, path string, names []string) (err error) {
	a, err := c.open(path, "r")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	for _, name := range names {
		_, r, err := a.OpenEntry(name)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if _, err := io.Copy(c.out, r); err != nil {
			return fmt.Errorf("%s: %s: %w", path, name, err)
		}
	}
	return nil
}
