package space

import (
	"io"
	"log/slog"
	"math"
)

// options holds configurable settings for a Space.
type options struct {
	logger *slog.Logger
	checks bool
}

// Option configures a Space.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithChecks enables structural validation of every new polytope. This is
// expensive and intended for tests.
func WithChecks() Option {
	return func(o *options) {
		o.checks = true
	}
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}
