package feign

import (
	"context"
	"fmt"
	"sort"

	"github.com/kbukum/feignkit/component"
	"github.com/kbukum/feignkit/httpclient"
	"github.com/kbukum/feignkit/logger"
)

// compile-time assertions
var _ component.Component = (*Context)(nil)
var _ component.Describable = (*Context)(nil)

// Name returns the component name.
func (c *Context) Name() string {
	return "feign"
}

// Start is a no-op; the context is fully built by NewContext.
func (c *Context) Start(_ context.Context) error {
	c.log.Debug("client context started")
	return nil
}

// Stop closes every client and the shared transport. Clients cannot be
// created afterwards.
func (c *Context) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil
	}
	c.stopped = true
	for _, a := range c.clients {
		a.Close()
	}
	c.clients = map[string]*httpclient.Adapter{}

	if err := c.transport.Close(); err != nil {
		c.log.Warn("transport close failed", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	c.log.Info("client context stopped")
	return nil
}

// Health reports unhealthy once the context is stopped.
func (c *Context) Health(_ context.Context) component.Health {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.stopped {
		h.Status = component.StatusUnhealthy
		h.Message = "stopped"
	}
	return h
}

// Describe returns component description for the startup summary.
func (c *Context) Describe() component.Description {
	names := make([]string, 0, len(c.settings.Clients))
	for name := range c.settings.Clients {
		names = append(names, name)
	}
	sort.Strings(names)

	return component.Description{
		Name: "Feign client context",
		Type: "feign-context",
		Details: fmt.Sprintf("transport=%s compression(response=%t request=%t) clients=%v",
			c.transport.Kind(),
			c.settings.ResponseCompressionEnabled(),
			c.settings.RequestCompressionEnabled(),
			names,
		),
	}
}
