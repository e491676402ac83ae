package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// HTTP2 is the alternate transport backed by golang.org/x/net/http2.
// It requests and decodes gzip on its own, so it does not support
// compression wiring.
type HTTP2 struct {
	base *http2.Transport
}

var _ Handle = (*HTTP2)(nil)

// NewHTTP2 creates an HTTP/2 transport from cfg.
func NewHTTP2(cfg Config) *HTTP2 {
	cfg.ApplyDefaults()

	base := &http2.Transport{
		IdleConnTimeout: cfg.IdleConnTimeout,
	}
	if cfg.AllowCleartext {
		base.AllowHTTP = true
		base.DialTLSContext = func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, addr)
		}
	}
	return &HTTP2{base: base}
}

// Kind returns KindHTTP2.
func (h *HTTP2) Kind() string { return KindHTTP2 }

// RoundTrip sends req over HTTP/2.
func (h *HTTP2) RoundTrip(req *http.Request) (*http.Response, error) {
	return h.base.RoundTrip(req)
}

// Close releases idle connections.
func (h *HTTP2) Close() error {
	h.base.CloseIdleConnections()
	return nil
}
