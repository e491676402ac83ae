// Package resilience retries failed calls with capped exponential backoff.
//
//	resp, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*Response, error) {
//	    return send(ctx)
//	})
//
// Errors that implement RetryAfterHinter override the computed delay, so a
// server's Retry-After header is honoured up to MaxPeriod.
package resilience
