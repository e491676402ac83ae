// Package compression wires the gzip request interceptors.
//
// Two interceptors exist. AcceptGzipEncoding asks servers for compressed
// responses and ContentGzipEncoding compresses large request bodies.
// Register adds them to an interceptor registry when their flag is
// enabled, but only if the transport decodes compressed responses itself
// (see transport.SupportsCompression). On any other transport the
// registration is skipped without error.
package compression
