package interceptor

import (
	"net/http"

	"github.com/kbukum/feignkit/errors"
)

// RoundTripper applies an interceptor chain to a clone of each request
// before handing it to the next round tripper.
type RoundTripper struct {
	next  http.RoundTripper
	chain []Named
}

// NewRoundTripper wraps next with chain, which runs in slice order.
func NewRoundTripper(next http.RoundTripper, chain []Named) *RoundTripper {
	return &RoundTripper{next: next, chain: chain}
}

// RoundTrip implements http.RoundTripper.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for _, n := range rt.chain {
		if err := n.Interceptor.Apply(out); err != nil {
			if out.Body != nil {
				_ = out.Body.Close()
			}
			return nil, errors.InterceptorFailed(n.Name, err)
		}
	}
	return rt.next.RoundTrip(out)
}

// Unwrap returns the wrapped round tripper.
func (rt *RoundTripper) Unwrap() http.RoundTripper { return rt.next }

// Chain returns the interceptors in execution order.
func (rt *RoundTripper) Chain() []Named {
	return append([]Named(nil), rt.chain...)
}
