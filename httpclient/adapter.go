package httpclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/feignkit/errors"
	"github.com/kbukum/feignkit/interceptor"
	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/resilience"
	"github.com/kbukum/feignkit/version"
)

// Adapter sends requests for one named client over a shared round tripper.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request failures.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an adapter that sends requests through rt. A nil rt uses
// http.DefaultTransport.
func New(cfg Config, rt http.RoundTripper, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rt == nil {
		rt = http.DefaultTransport
	}

	a := &Adapter{
		httpClient: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		config:     cfg,
		log:        logger.WithComponent("httpclient"),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithFields(logger.Fields(logger.FieldClient, cfg.Name))
	return a, nil
}

// Do executes an HTTP request and returns the complete response. A non-2xx
// status returns both the response and a classified *Error. With retry
// configured, retryable failures are re-sent; an io.Reader body is only
// sent once.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.config.Retry == nil {
		return a.doOnce(ctx, req)
	}
	policy := *a.config.Retry
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		a.log.Debug("retrying request", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
			logger.FieldDuration, delay.Milliseconds(),
		))
	}
	return resilience.Retry(ctx, policy, func() (*Response, error) {
		return a.doOnce(ctx, req)
	})
}

func (a *Adapter) doOnce(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		a.log.Debug("request failed", logger.Fields(
			logger.FieldMethod, httpReq.Method,
			logger.FieldURL, httpReq.URL.String(),
			logger.FieldError, err.Error(),
		))
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		classErr.retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return result, classErr
	}
	return result, nil
}

// DoJSON executes req and decodes a successful response body into out.
func (a *Adapter) DoJSON(ctx context.Context, req Request, out any) (*Response, error) {
	resp, err := a.Do(ctx, req)
	if err != nil {
		return resp, err
	}
	if out != nil && len(resp.Body) > 0 {
		if err := resp.DecodeJSON(out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Name returns the client name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the adapter's configuration.
func (a *Adapter) Config() Config {
	return a.config
}

// Transport returns the round tripper requests are sent through.
func (a *Adapter) Transport() http.RoundTripper {
	return a.httpClient.Transport
}

// Close releases idle connections held by the transport.
func (a *Adapter) Close() {
	a.httpClient.CloseIdleConnections()
}

func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if a.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent())
	}
	return httpReq, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if stderrors.Is(err, errors.ErrInterceptorFailed) {
		return err
	}
	if ctx.Err() != nil || stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var te interface{ Timeout() bool }
	if stderrors.As(err, &te) && te.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// parseRetryAfter accepts the delay-seconds and HTTP-date forms.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// Chain returns the interceptors applied by the adapter's transport, or nil
// when the transport does not run an interceptor chain.
func (a *Adapter) Chain() []interceptor.Named {
	if rt, ok := a.httpClient.Transport.(*interceptor.RoundTripper); ok {
		return rt.Chain()
	}
	return nil
}
