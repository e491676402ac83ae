package transport

import (
	"net/http"
)

// Transport kinds registered by DefaultRegistry.
const (
	KindPooled = "pooled"
	KindHTTP2  = "http2"
)

// Handle is a concrete HTTP transport selected at startup.
type Handle interface {
	http.RoundTripper
	// Kind returns the factory kind the handle was created from.
	Kind() string
	// Close releases idle connections.
	Close() error
}

// CompressionCapable is implemented by transports that decode compressed
// response bodies themselves, which is what the accept-gzip and
// content-gzip interceptors rely on.
type CompressionCapable interface {
	SupportsCompressionWiring() bool
}

// Unwrapper is implemented by round trippers that decorate another one.
type Unwrapper interface {
	Unwrap() http.RoundTripper
}

// SupportsCompression reports whether rt, or any round tripper it wraps,
// supports compression wiring.
func SupportsCompression(rt http.RoundTripper) bool {
	for rt != nil {
		if c, ok := rt.(CompressionCapable); ok {
			return c.SupportsCompressionWiring()
		}
		u, ok := rt.(Unwrapper)
		if !ok {
			return false
		}
		rt = u.Unwrap()
	}
	return false
}

// KindFor maps the http2.enabled flag to a transport kind.
func KindFor(http2Enabled bool) string {
	if http2Enabled {
		return KindHTTP2
	}
	return KindPooled
}
