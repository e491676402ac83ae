package feign

import (
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/transport"
)

// Option configures a Context during construction.
type Option func(*contextOptions)

type registration struct {
	client string
	name   string
	value  any
}

type contextOptions struct {
	logger         *logger.Logger
	transport      transport.Handle
	transports     *transport.Registry
	requestLogging bool
	propagator     propagation.TextMapPropagator
	registrations  []registration
}

func resolveOptions(opts []Option) *contextOptions {
	o := &contextOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.WithComponent("feign")
	}
	if o.transports == nil {
		o.transports = transport.DefaultRegistry()
	}
	return o
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithTransport uses h instead of creating a transport from configuration.
// The context takes ownership and closes h on Stop.
func WithTransport(h transport.Handle) Option {
	return func(o *contextOptions) {
		o.transport = h
	}
}

// WithTransportRegistry creates the transport from r instead of the default
// registry. A custom kind is selected with transport.kind; an explicit
// http2.enabled still picks pooled or http2.
func WithTransportRegistry(r *transport.Registry) Option {
	return func(o *contextOptions) {
		o.transports = r
	}
}

// WithRequestLogging logs every round trip at debug level.
func WithRequestLogging() Option {
	return func(o *contextOptions) {
		o.requestLogging = true
	}
}

// WithPropagator sets the propagator used when tracing is enabled.
// Defaults to the global OpenTelemetry propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *contextOptions) {
		o.propagator = p
	}
}

// WithInterceptor registers value as a default for every client. It is
// applied after auto-configuration, so it replaces an entry of the same name.
func WithInterceptor(name string, value any) Option {
	return func(o *contextOptions) {
		o.registrations = append(o.registrations, registration{name: name, value: value})
	}
}

// WithClientInterceptor registers value for one client only.
func WithClientInterceptor(client, name string, value any) Option {
	return func(o *contextOptions) {
		o.registrations = append(o.registrations, registration{client: client, name: name, value: value})
	}
}
