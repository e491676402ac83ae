package feign

import (
	"time"

	"github.com/kbukum/feignkit/compression"
	"github.com/kbukum/feignkit/config"
	"github.com/kbukum/feignkit/errors"
	"github.com/kbukum/feignkit/interceptor"
	"github.com/kbukum/feignkit/resilience"
	"github.com/kbukum/feignkit/transport"
)

// Configuration keys outside the compression block.
const (
	KeyHTTP2Enabled   = "http2.enabled"
	KeyTracingEnabled = "tracing.enabled"
	KeyTransport      = "transport"
	KeyClients        = "clients"
)

// Settings is the resolved configuration of a client context. Clients is
// keyed by interceptor.ClientKey.
type Settings struct {
	Compression compression.Properties
	// HTTP2Enabled selects the alternate http2 transport.
	HTTP2Enabled   bool
	TracingEnabled bool
	Transport      transport.Config
	Clients        map[string]ClientSettings
}

// ResponseCompressionEnabled reports the compression.response.enabled flag.
func (s Settings) ResponseCompressionEnabled() bool { return s.Compression.Response.Enabled }

// RequestCompressionEnabled reports the compression.request.enabled flag.
func (s Settings) RequestCompressionEnabled() bool { return s.Compression.Request.Enabled }

// ClientSettings configures one named client.
type ClientSettings struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	Auth           *interceptor.AuthConfig
	// Retry is nil unless clients.<name>.retry is configured.
	Retry *resilience.RetryConfig
}

// ResolveSettings reads Settings from src. Absent keys take their defaults;
// any malformed value is an INVALID_CONFIG error.
func ResolveSettings(src *config.Source) (Settings, error) {
	var s Settings
	var err error

	if s.Compression, err = compression.Resolve(src); err != nil {
		return s, err
	}
	if s.HTTP2Enabled, err = src.Bool(KeyHTTP2Enabled, false); err != nil {
		return s, err
	}
	if s.TracingEnabled, err = src.Bool(KeyTracingEnabled, false); err != nil {
		return s, err
	}

	if src.Has(KeyTransport) {
		if err := src.Unmarshal(KeyTransport, &s.Transport); err != nil {
			return s, err
		}
	}
	if src.Has(KeyHTTP2Enabled) || s.Transport.Kind == "" {
		s.Transport.Kind = transport.KindFor(s.HTTP2Enabled)
	}

	s.Clients = make(map[string]ClientSettings)
	for _, name := range src.Children(KeyClients) {
		cs, err := resolveClient(src, name)
		if err != nil {
			return s, err
		}
		s.Clients[interceptor.ClientKey(name)] = cs
	}
	return s, nil
}

func resolveClient(src *config.Source, name string) (ClientSettings, error) {
	prefix := KeyClients + "." + name + "."
	var cs ClientSettings
	var err error

	if cs.BaseURL, err = src.String(prefix+"base_url", ""); err != nil {
		return cs, err
	}
	if cs.Timeout, err = src.Duration(prefix+"timeout", 0); err != nil {
		return cs, err
	}
	if cs.DefaultHeaders, err = src.StringMap(prefix + "default_headers"); err != nil {
		return cs, err
	}
	if src.Has(prefix + "auth") {
		var auth interceptor.AuthConfig
		if err := src.Unmarshal(prefix+"auth", &auth); err != nil {
			return cs, err
		}
		if err := auth.Validate(); err != nil {
			return cs, errors.InvalidConfig(prefix+"auth", err)
		}
		cs.Auth = &auth
	}
	if src.Has(prefix + "retry") {
		var retry resilience.RetryConfig
		if err := src.Unmarshal(prefix+"retry", &retry); err != nil {
			return cs, err
		}
		checked := retry
		checked.ApplyDefaults()
		if err := checked.Validate(); err != nil {
			return cs, err
		}
		cs.Retry = &retry
	}
	return cs, nil
}
