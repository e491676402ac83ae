package httpclient

import (
	"time"

	"github.com/kbukum/feignkit/resilience"
	"github.com/kbukum/feignkit/validation"
)

const defaultTimeout = 30 * time.Second

// Config configures a named HTTP client.
type Config struct {
	// Name identifies the client in logs and interceptor lookups.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout bounds a whole request including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are set on every request; request headers take precedence.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry re-sends retryable failures. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retry != nil {
		retry := *c.Retry
		if retry.RetryIf == nil {
			retry.RetryIf = IsRetryable
		}
		retry.ApplyDefaults()
		c.Retry = &retry
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
