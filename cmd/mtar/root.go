package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/meigma/mtar"
)

// cli holds the state shared by all subcommands.
type cli struct {
	out    io.Writer
	errOut io.Writer

	debug     bool
	chunkSize string

	logger *slog.Logger
	opts   []mtar.Option
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "mtar",
		Short:         "Read and write tar archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.setup()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.BoolVar(&c.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&c.chunkSize, "chunk-size", "4KiB", "Largest single transfer to or from an archive file (e.g. 512, 64KiB, 1MiB)")

	cmd.AddCommand(
		newListCommand(c),
		newCatCommand(c),
		newExtractCommand(c),
		newCreateCommand(c),
		newVerifyCommand(c),
		newDescribeCommand(c),
	)
	return cmd
}

// setup builds the logger and archive options from the global flags.
func (c *cli) setup() error {
	level := slog.LevelInfo
	if c.debug {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))

	n, err := units.RAMInBytes(c.chunkSize)
	if err != nil {
		return fmt.Errorf("invalid --chunk-size: %w", err)
	}
	if n <= 0 || n > math.MaxInt32 {
		return fmt.Errorf("invalid --chunk-size: %s is out of range", c.chunkSize)
	}

	c.opts = []mtar.Option{mtar.WithLogger(c.logger), mtar.WithChunkSize(int(n))}
	return nil
}

// open opens the archive at path with an fopen-style mode.
func (c *cli) open(path, mode string) (*mtar.Archive, error) {
	a, err := mtar.OpenFile(path, mode, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
