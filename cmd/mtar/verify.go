package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/mtar"
)

type verifyResult struct {
	entries int
	bytes   uint64
	err     error
}

func newVerifyCommand(c *cli) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "verify ARCHIVE [ARCHIVE...]",
		Short: "Read every header and payload of one or more archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runVerify(c, args, jobs)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Archives verified in parallel")
	return cmd
}

func runVerify(c *cli, paths []string, jobs int) error {
	results := make([]verifyResult, len(paths))

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = c.verify(path)
			return nil
		})
	}
	// Failures are kept per path in results so every archive gets a line.
	_ = g.Wait()

	var errs []error
	for i, path := range paths {
		r := results[i]
		if r.err != nil {
			fmt.Fprintf(c.out, "%s: FAILED: %v\n", path, r.err)
			errs = append(errs, fmt.Errorf("%s: %w", path, r.err))
			continue
		}
		fmt.Fprintf(c.out, "%s: OK (%d entries, %s)\n", path, r.entries, units.HumanSize(float64(r.bytes)))
	}
	return errors.Join(errs...)
}

// verify reads one archive to its terminator. Each call opens its own
// Archive, so calls may run concurrently.
func (c *cli) verify(path string) (res verifyResult) {
	a, err := mtar.OpenFile(path, "r", c.opts...)
	if err != nil {
		return verifyResult{err: err}
	}
	defer func() { res.err = errors.Join(res.err, a.Close()) }()

	for h, err := range a.Entries() {
		if err != nil {
			res.err = err
			return res
		}
		n, err := io.Copy(io.Discard, a.Reader(h))
		if err != nil {
			res.err = fmt.Errorf("%s: %w", h.Name, err)
			return res
		}
		res.entries++
		res.bytes += uint64(n) //nolint:gosec // io.Copy never returns a negative count
	}
	c.logger.Debug("archive verified", "path", path, "entries", res.entries)
	return res
}
