package mtar

import (
	"log/slog"

	"github.com/meigma/mtar/backend"
)

// Option configures an Archive.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	streamOpts []backend.StreamOption
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithChunkSize bounds each transfer of the file backend created by OpenFile.
// It has no effect on Open, which receives a ready backend.
func WithChunkSize(n int) Option {
	return func(c *config) {
		c.streamOpts = append(c.streamOpts, backend.WithChunkSize(n))
	}
}
