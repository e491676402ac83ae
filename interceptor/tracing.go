package interceptor

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TracePropagation injects the span context carried by the request context
// into the outgoing headers.
type TracePropagation struct {
	propagator propagation.TextMapPropagator
}

// NewTracePropagation uses p, or the global OpenTelemetry propagator when p is nil.
func NewTracePropagation(p propagation.TextMapPropagator) *TracePropagation {
	return &TracePropagation{propagator: p}
}

// Apply implements Interceptor.
func (t *TracePropagation) Apply(req *http.Request) error {
	p := t.propagator
	if p == nil {
		p = otel.GetTextMapPropagator()
	}
	p.Inject(req.Context(), propagation.HeaderCarrier(req.Header))
	return nil
}
