package events

import (
	"github.com/rs/zerolog"
)

type options struct {
	failFast bool
	logger   zerolog.Logger
}

// Option configures a Registry or Set at construction time.
type Option func(*options)

// WithFailFast makes Publish abort the remaining deliveries on the
// first handler fault and return that fault directly, instead of the
// default best-effort delivery with aggregated faults.
func WithFailFast() Option {
	return func(o *options) {
		o.failFast = true
	}
}

// WithLogger attaches a logger for registration and delivery events.
// Without it the registry is silent.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
