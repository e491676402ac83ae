package interceptor

import "net/http"

// Registration names of the interceptors in this package.
const (
	DefaultHeadersName   = "defaultHeadersRequestInterceptor"
	AuthName             = "authRequestInterceptor"
	TracePropagationName = "tracePropagationInterceptor"
)

// Headers sets default request headers. Headers already present on the
// request are left untouched.
type Headers struct {
	values http.Header
}

// NewHeaders creates a Headers interceptor from a name/value map.
func NewHeaders(values map[string]string) *Headers {
	h := make(http.Header, len(values))
	for k, v := range values {
		h.Set(k, v)
	}
	return &Headers{values: h}
}

// Apply implements Interceptor.
func (h *Headers) Apply(req *http.Request) error {
	for k, v := range h.values {
		if _, exists := req.Header[k]; !exists {
			req.Header[k] = append([]string(nil), v...)
		}
	}
	return nil
}

// Order runs default headers first so later interceptors see them.
func (h *Headers) Order() int { return -100 }
