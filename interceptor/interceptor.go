package interceptor

import (
	"net/http"
	"sort"
)

// Interceptor rewrites an outgoing request before it reaches the transport.
type Interceptor interface {
	Apply(req *http.Request) error
}

// Func adapts a function to the Interceptor interface.
type Func func(req *http.Request) error

// Apply calls f(req).
func (f Func) Apply(req *http.Request) error { return f(req) }

// Ordered is optionally implemented by interceptors that must run before
// or after others. Lower values run first; the default is 0.
type Ordered interface {
	Order() int
}

// Named pairs an interceptor with its registration name.
type Named struct {
	Name        string
	Interceptor Interceptor
}

// Sorted returns the interceptors in execution order: ascending Order(),
// ties broken by name.
func Sorted(m map[string]Interceptor) []Named {
	out := make([]Named, 0, len(m))
	for name, i := range m {
		out = append(out, Named{Name: name, Interceptor: i})
	}
	sort.Slice(out, func(a, b int) bool {
		oa, ob := orderOf(out[a].Interceptor), orderOf(out[b].Interceptor)
		if oa != ob {
			return oa < ob
		}
		return out[a].Name < out[b].Name
	})
	return out
}

func orderOf(i Interceptor) int {
	if o, ok := i.(Ordered); ok {
		return o.Order()
	}
	return 0
}
