package compression

import (
	"net/http"

	"github.com/kbukum/feignkit/interceptor"
	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/transport"
)

// Register adds the compression interceptors that p enables to reg as
// default registrations. Nothing is registered when rt does not support
// compression wiring. The only error is a write to a sealed registry.
func Register(p Properties, rt http.RoundTripper, reg *interceptor.Registry) error {
	log := logger.WithComponent("compression")

	if !p.Response.Enabled && !p.Request.Enabled {
		return nil
	}
	if !transport.SupportsCompression(rt) {
		log.Info("transport does not support compression wiring, skipping gzip interceptors", logger.Fields(
			"response_enabled", p.Response.Enabled,
			"request_enabled", p.Request.Enabled,
		))
		return nil
	}

	if p.Response.Enabled {
		if err := reg.Register(AcceptGzipEncodingName, NewAcceptGzipEncoding()); err != nil {
			return err
		}
		log.Debug("interceptor registered", logger.Fields(logger.FieldInterceptor, AcceptGzipEncodingName))
	}
	if p.Request.Enabled {
		if err := reg.Register(ContentGzipEncodingName, NewContentGzipEncoding(p.Request)); err != nil {
			return err
		}
		log.Debug("interceptor registered", logger.Fields(logger.FieldInterceptor, ContentGzipEncodingName))
	}
	return nil
}
