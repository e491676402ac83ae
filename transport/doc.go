// Package transport provides the HTTP transports feignkit clients send
// requests through, and the capability check that decides whether
// compression interceptors may be wired onto a transport.
//
// Two kinds ship by default:
//
//   - pooled: net/http connection pooling with feignkit-managed response
//     decoding. It implements CompressionCapable.
//   - http2: golang.org/x/net/http2, which negotiates compression on its
//     own and therefore does not.
//
// The capability is discovered through wrappers: any round tripper that
// exposes Unwrap() is looked through, so decorating a pooled transport with
// WithLogging keeps compression wiring active.
package transport
