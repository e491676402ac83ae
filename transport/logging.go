package transport

import (
	"net/http"
	"time"

	"github.com/kbukum/feignkit/logger"
)

type loggingTransport struct {
	next Handle
	log  *logger.Logger
}

// WithLogging wraps h so every round trip is logged at debug level.
// The wrapper exposes Unwrap, so capability checks see through it.
func WithLogging(h Handle, log *logger.Logger) Handle {
	return &loggingTransport{next: h, log: log.WithFields(logger.Fields(logger.FieldTransport, h.Kind()))}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL.Redacted(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		t.log.Warn("round trip failed", fields)
		return nil, err
	}
	fields[logger.FieldStatus] = resp.StatusCode
	t.log.Debug("round trip", fields)
	return resp, nil
}

func (t *loggingTransport) Unwrap() http.RoundTripper { return t.next }

func (t *loggingTransport) Kind() string { return t.next.Kind() }

func (t *loggingTransport) Close() error { return t.next.Close() }
