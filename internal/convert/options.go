package convert

import (
	"time"

	"github.com/go-kit/log"
)

type config struct {
	logger log.Logger
	now    func() time.Time
}

func defaultConfig() config {
	return config{
		logger: log.NewNopLogger(),
		now:    time.Now,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option is a functional option for the converters.
type Option func(*config)

// WithLogger sets the logger used for debug output.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock sets the time source for the MCU image timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}
