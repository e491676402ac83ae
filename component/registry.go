package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/feignkit/errors"
	"github.com/kbukum/feignkit/logger"
)

const defaultStopTimeout = 10 * time.Second

// Registry owns the lifecycle of the client context and anything started
// alongside it. Start runs in registration order, stop in reverse, so the
// context is registered first and closes its transport last.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	byName      map[string]Component
	running     map[string]bool
	stopTimeout time.Duration
	log         *logger.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger logs lifecycle transitions to l.
func WithRegistryLogger(l *logger.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

// WithStopTimeout bounds each component's Stop. Zero keeps the default.
func WithStopTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.stopTimeout = d
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName:      make(map[string]Component),
		running:     make(map[string]bool),
		stopTimeout: defaultStopTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("lifecycle")
	}
	return r
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("component %q already registered", name))
	}
	r.order = append(r.order, name)
	r.byName[name] = c
	r.log.Debug("component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts components in registration order and stops at the first
// failure. Components already running are left for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if r.running[name] {
			continue
		}
		if err := r.byName[name].Start(ctx); err != nil {
			r.log.Error("component start failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			return fmt.Errorf("start %s: %w", name, err)
		}
		r.running[name] = true
		r.log.Debug("component started", logger.Fields(logger.FieldComponent, name))
	}
	return nil
}

// StopAll stops running components in reverse order. Every component gets
// its own stop deadline and all failures are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		if !r.running[name] {
			continue
		}
		stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
		err := r.byName[name].Stop(stopCtx)
		cancel()
		delete(r.running, name)

		if err != nil {
			r.log.Error("component stop failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
			continue
		}
		r.log.Debug("component stopped", logger.Fields(logger.FieldComponent, name))
	}
	return stderrors.Join(errs...)
}

// HealthAll reports every component's health in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].Health(ctx))
	}
	return out
}

// Summary pairs a component's health with its self-description.
type Summary struct {
	Health
	Description
}

// Summaries returns one Summary per component in registration order.
// Description is zero for components that are not Describable.
func (r *Registry) Summaries(ctx context.Context) []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		c := r.byName[name]
		s := Summary{Health: c.Health(ctx)}
		if d, ok := c.(Describable); ok {
			s.Description = d.Describe()
		}
		out = append(out, s)
	}
	return out
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}
