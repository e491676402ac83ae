package transport

import (
	"fmt"
	"time"
)

const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config configures transport construction.
type Config struct {
	// Kind selects the factory. Defaults to pooled.
	Kind string `yaml:"kind" mapstructure:"kind"`

	// MaxIdleConns caps idle connections across all hosts (pooled only).
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`

	// MaxIdleConnsPerHost caps idle connections per host (pooled only).
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`

	// IdleConnTimeout closes connections idle for longer than this.
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout" mapstructure:"idle_conn_timeout"`

	// AllowCleartext lets the http2 transport speak h2c to http:// URLs.
	AllowCleartext bool `yaml:"allow_cleartext" mapstructure:"allow_cleartext"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Kind == "" {
		c.Kind = KindPooled
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = defaultIdleConnTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxIdleConns < 0 || c.MaxIdleConnsPerHost < 0 {
		return fmt.Errorf("transport: idle connection limits must not be negative")
	}
	if c.IdleConnTimeout < 0 {
		return fmt.Errorf("transport: idle_conn_timeout must not be negative")
	}
	return nil
}
