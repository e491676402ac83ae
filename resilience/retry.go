package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/kbukum/feignkit/validation"
)

const (
	defaultMaxAttempts = 5
	defaultPeriod      = 100 * time.Millisecond
	defaultMaxPeriod   = time.Second
	defaultMultiplier  = 1.5
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1"`
	// Period is the delay before the first retry.
	Period time.Duration `yaml:"period" mapstructure:"period" validate:"gte=0"`
	// MaxPeriod caps every delay, including server-supplied ones.
	MaxPeriod time.Duration `yaml:"max_period" mapstructure:"max_period" validate:"gte=0"`
	// Multiplier grows the delay after each retry.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier" validate:"gte=1"`
	// Jitter randomises each delay by up to this fraction (0.0 to 1.0).
	Jitter float64 `yaml:"jitter" mapstructure:"jitter" validate:"gte=0,lte=1"`

	// RetryIf decides whether an error is retried. Defaults to DefaultRetryIf.
	RetryIf func(error) bool `yaml:"-" mapstructure:"-"`
	// OnRetry is called before each sleep.
	OnRetry func(attempt int, err error, delay time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRetryConfig returns five attempts starting at 100ms, growing by
// 1.5x and capped at one second.
func DefaultRetryConfig() RetryConfig {
	cfg := RetryConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-value fields.
func (c *RetryConfig) ApplyDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.Period == 0 {
		c.Period = defaultPeriod
	}
	if c.MaxPeriod == 0 {
		c.MaxPeriod = defaultMaxPeriod
	}
	if c.Multiplier == 0 {
		c.Multiplier = defaultMultiplier
	}
	if c.RetryIf == nil {
		c.RetryIf = DefaultRetryIf
	}
}

// Validate checks that the configuration is valid.
func (c *RetryConfig) Validate() error {
	return validation.Validate(c)
}

// DefaultRetryIf retries everything except cancellation.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// RetryAfterHinter is implemented by errors that carry a server-requested delay.
type RetryAfterHinter interface {
	RetryAfter() time.Duration
}

// Retry calls fn until it succeeds, RetryIf rejects the error, attempts run
// out or ctx is done. The result of the last attempt is returned alongside
// its error.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	cfg.ApplyDefaults()

	var result T
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = fn()
		if err == nil || attempt >= cfg.MaxAttempts || !cfg.RetryIf(err) {
			return result, err
		}

		delay := nextDelay(attempt, cfg, err)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}
}

// nextDelay returns the sleep after the given attempt. A server hint wins
// over the exponential schedule; both are capped at MaxPeriod.
func nextDelay(attempt int, cfg RetryConfig, err error) time.Duration {
	var hint RetryAfterHinter
	if errors.As(err, &hint) && hint.RetryAfter() > 0 {
		return min(hint.RetryAfter(), cfg.MaxPeriod)
	}

	d := float64(cfg.Period) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if cfg.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * cfg.Jitter
	}
	if d > float64(cfg.MaxPeriod) {
		d = float64(cfg.MaxPeriod)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
