package feign

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/feignkit/compression"
	"github.com/kbukum/feignkit/config"
	"github.com/kbukum/feignkit/errors"
	"github.com/kbukum/feignkit/httpclient"
	"github.com/kbukum/feignkit/interceptor"
	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/transport"
)

// Context owns the transport and the sealed interceptor registry shared by
// all named clients built from one configuration.
type Context struct {
	id        string
	settings  Settings
	transport transport.Handle
	registry  *interceptor.Registry
	log       *logger.Logger

	mu      sync.Mutex
	clients map[string]*httpclient.Adapter
	stopped bool
}

// NewContext resolves settings from src, creates the transport, registers
// interceptors and seals the registry. Any configuration error aborts
// construction.
func NewContext(src *config.Source, opts ...Option) (*Context, error) {
	if src == nil {
		src = config.NewSource(nil)
	}
	o := resolveOptions(opts)

	settings, err := ResolveSettings(src)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := o.logger.WithFields(logger.Fields(logger.FieldGeneration, id))

	h := o.transport
	if h == nil {
		if h, err = o.transports.Create(settings.Transport); err != nil {
			return nil, err
		}
	}
	if o.requestLogging {
		h = transport.WithLogging(h, log)
	}

	c := &Context{
		id:        id,
		settings:  settings,
		transport: h,
		registry:  interceptor.NewRegistry(),
		log:       log,
		clients:   make(map[string]*httpclient.Adapter),
	}
	if err := c.configure(o); err != nil {
		_ = h.Close()
		return nil, err
	}
	c.registry.Seal()

	log.Info("client context ready", logger.Fields(
		logger.FieldTransport, h.Kind(),
		"response_compression", settings.ResponseCompressionEnabled(),
		"request_compression", settings.RequestCompressionEnabled(),
		"clients", len(settings.Clients),
	))
	return c, nil
}

func (c *Context) configure(o *contextOptions) error {
	if err := compression.Register(c.settings.Compression, c.transport, c.registry); err != nil {
		return err
	}
	if c.settings.TracingEnabled {
		if err := c.registry.Register(interceptor.TracePropagationName, interceptor.NewTracePropagation(o.propagator)); err != nil {
			return err
		}
	}

	for name, cs := range c.settings.Clients {
		if len(cs.DefaultHeaders) > 0 {
			if err := c.registry.RegisterFor(name, interceptor.DefaultHeadersName, interceptor.NewHeaders(cs.DefaultHeaders)); err != nil {
				return err
			}
		}
		if cs.Auth != nil {
			auth, err := interceptor.NewAuth(*cs.Auth)
			if err != nil {
				return errors.InvalidConfig(KeyClients+"."+name+".auth", err)
			}
			if err := c.registry.RegisterFor(name, interceptor.AuthName, auth); err != nil {
				return err
			}
		}
	}

	for _, r := range o.registrations {
		var err error
		if r.client == "" {
			err = c.registry.Register(r.name, r.value)
		} else {
			err = c.registry.RegisterFor(r.client, r.name, r.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ID returns the generation ID assigned at construction.
func (c *Context) ID() string { return c.id }

// Settings returns the resolved settings.
func (c *Context) Settings() Settings { return c.settings }

// Transport returns the transport shared by all clients.
func (c *Context) Transport() transport.Handle { return c.transport }

// Registry returns the sealed interceptor registry.
func (c *Context) Registry() *interceptor.Registry { return c.registry }

// Instances returns the interceptors visible to client, keyed by
// registration name. The map is never nil.
func (c *Context) Instances(client string) map[string]interceptor.Interceptor {
	return interceptor.Instances[interceptor.Interceptor](c.registry, client)
}

// Instances returns every value registered for client that implements T.
func Instances[T any](c *Context, client string) map[string]T {
	return interceptor.Instances[T](c.registry, client)
}

// Client returns the named HTTP client, creating it on first use. Its
// requests pass through the interceptors visible to name.
func (c *Context) Client(name string) (*httpclient.Adapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil, errors.New(errors.ErrCodeInternal, "client context is stopped")
	}
	name = interceptor.ClientKey(name)
	if a, ok := c.clients[name]; ok {
		return a, nil
	}

	cs := c.settings.Clients[name]
	rt := interceptor.NewRoundTripper(c.transport, interceptor.Sorted(c.Instances(name)))
	a, err := httpclient.New(httpclient.Config{
		Name:    name,
		BaseURL: cs.BaseURL,
		Timeout: cs.Timeout,
		Retry:   cs.Retry,
	}, rt, httpclient.WithLogger(c.log))
	if err != nil {
		return nil, err
	}
	c.clients[name] = a

	c.log.Debug("client created", logger.Fields(
		logger.FieldClient, name,
		"interceptors", len(rt.Chain()),
	))
	return a, nil
}
