package transport

import (
	"sort"
	"sync"

	"github.com/kbukum/feignkit/errors"
)

// Factory creates a transport handle from configuration.
type Factory func(cfg Config) (Handle, error)

// Registry maps transport kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a Registry with the pooled and http2 kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindPooled, func(cfg Config) (Handle, error) { return NewPooled(cfg), nil })
	r.Register(KindHTTP2, func(cfg Config) (Handle, error) { return NewHTTP2(cfg), nil })
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Create builds a handle for cfg.Kind.
func (r *Registry) Create(cfg Config) (Handle, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfig("transport", err)
	}

	r.mu.RLock()
	factory, ok := r.factories[cfg.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.UnknownTransport(cfg.Kind)
	}
	return factory(cfg)
}

// Kinds returns the sorted registered kinds.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
