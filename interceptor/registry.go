package interceptor

import (
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/feignkit/errors"
)

// Registry maps registration names to values, scoped per named client.
type Registry struct {
	mu       sync.RWMutex
	defaults map[string]any
	clients  map[string]map[string]any
	sealed   bool
}

// NewRegistry creates an empty, unsealed Registry.
func NewRegistry() *Registry {
	return &Registry{
		defaults: make(map[string]any),
		clients:  make(map[string]map[string]any),
	}
}

// Register adds a default entry visible to every client.
// An existing entry with the same name is overwritten.
func (r *Registry) Register(name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.RegistrySealed(name)
	}
	r.defaults[name] = value
	return nil
}

// RegisterFor adds an entry scoped to one client.
// An existing entry with the same name is overwritten.
func (r *Registry) RegisterFor(client, name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.RegistrySealed(name)
	}
	client = ClientKey(client)
	scope, ok := r.clients[client]
	if !ok {
		scope = make(map[string]any)
		r.clients[client] = scope
	}
	scope[name] = value
	return nil
}

// ClientKey normalises a client name. Configuration keys are
// case-insensitive, so Orders and orders name the same client.
func ClientKey(name string) string {
	return strings.ToLower(name)
}

// Seal rejects any further registration.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns every entry visible to client: defaults first, then the
// client's own entries on top. The result is a fresh map.
func (r *Registry) Lookup(client string) map[string]any {
	client = ClientKey(client)
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any, len(r.defaults)+len(r.clients[client]))
	for name, v := range r.defaults {
		out[name] = v
	}
	for name, v := range r.clients[client] {
		out[name] = v
	}
	return out
}

// Clients returns the sorted names of clients with their own entries.
func (r *Registry) Clients() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instances returns the entries visible to client that implement T.
// It never returns nil.
func Instances[T any](r *Registry, client string) map[string]T {
	out := make(map[string]T)
	for name, v := range r.Lookup(client) {
		if t, ok := v.(T); ok {
			out[name] = t
		}
	}
	return out
}
