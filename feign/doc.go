// Package feign builds the client context: one transport, one sealed
// interceptor registry and the named HTTP clients that share them.
//
// A context is created once from configuration:
//
//	src, _ := config.LoadSource("orders-service")
//	fc, err := feign.NewContext(src)
//	if err != nil {
//	    return err // malformed flags fail here
//	}
//	defer fc.Stop(ctx)
//
//	orders, _ := fc.Client("orders")
//
// Recognised keys:
//
//	compression.response.enabled        accept-gzip interceptor
//	compression.request.enabled         content-gzip interceptor
//	compression.request.mime_types      media types eligible for request gzip
//	compression.request.min_request_size smallest body gzipped, in bytes
//	http2.enabled                       http2 transport instead of pooled
//	tracing.enabled                     W3C trace context propagation
//	transport.kind                      factory kind when http2.enabled is absent
//	transport.*                         pool sizing, see transport.Config
//	clients.<name>.base_url
//	clients.<name>.timeout
//	clients.<name>.default_headers.<header>
//	clients.<name>.auth.*               see interceptor.AuthConfig
//	clients.<name>.retry.*              see resilience.RetryConfig
//
// Client names are case-insensitive.
//
// The gzip interceptors are only wired when the selected transport supports
// compression; with http2 enabled they are skipped regardless of the flags.
package feign
