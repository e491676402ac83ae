package bootstrap

import (
	"time"

	"github.com/kbukum/feignkit/feign"
	"github.com/kbukum/feignkit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	feignOpts       []feign.Option
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{gracefulTimeout: 15 * time.Second}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the application logger. Without it the global logger is
// initialised from the config's Logging block.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout bounds shutdown. Defaults to 15s.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = d
	}
}

// WithFeignOptions passes options through to feign.NewContext.
func WithFeignOptions(opts ...feign.Option) Option {
	return func(o *appOptions) {
		o.feignOpts = append(o.feignOpts, opts...)
	}
}
