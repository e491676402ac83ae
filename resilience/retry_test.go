package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		Period:      time.Millisecond,
		MaxPeriod:   5 * time.Millisecond,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "success", nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary error")
		}
		return "success", nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" || calls != 3 {
		t.Errorf("expected success after 3 calls, got %q after %d", result, calls)
	}
}

func TestRetry_ReturnsLastResultOnExhaustion(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	result, err := Retry(context.Background(), fastConfig(3), func() (int, error) {
		calls++
		return calls, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if calls != 3 || result != 3 {
		t.Errorf("expected 3 calls and last result 3, got %d calls and result %d", calls, result)
	}
}

func TestRetry_RetryIfStopsEarly(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastConfig(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := Retry(context.Background(), cfg, func() (struct{}, error) {
		calls++
		return struct{}{}, permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("expected a single call with the permanent error, got %d calls, err %v", calls, err)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, Period: time.Hour, MaxPeriod: time.Hour}
	cfg.OnRetry = func(int, error, time.Duration) { cancel() }

	calls := 0
	_, err := Retry(ctx, cfg, func() (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_OnRetryDelays(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 4, Period: time.Millisecond, MaxPeriod: 2 * time.Millisecond, Multiplier: 2}
	var delays []time.Duration
	cfg.OnRetry = func(_ int, _ error, d time.Duration) { delays = append(delays, d) }

	_, _ = Retry(context.Background(), cfg, func() (int, error) { return 0, errors.New("fail") })

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 2 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("expected %d retries, got %d", len(want), len(delays))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, delays[i], want[i])
		}
	}
}

type hintedError struct{ after time.Duration }

func (h hintedError) Error() string             { return "slow down" }
func (h hintedError) RetryAfter() time.Duration { return h.after }

func TestNextDelay_RetryAfterHint(t *testing.T) {
	cfg := DefaultRetryConfig()
	if got := nextDelay(1, cfg, hintedError{after: 300 * time.Millisecond}); got != 300*time.Millisecond {
		t.Errorf("expected hint to win, got %v", got)
	}
	if got := nextDelay(1, cfg, hintedError{after: time.Minute}); got != cfg.MaxPeriod {
		t.Errorf("expected hint capped at MaxPeriod, got %v", got)
	}
}

func TestRetryConfig_Validate(t *testing.T) {
	cfg := DefaultRetryConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
	if cfg.MaxAttempts != 5 || cfg.Period != 100*time.Millisecond || cfg.MaxPeriod != time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	bad := RetryConfig{MaxAttempts: 3, Multiplier: 0.5}
	if err := bad.Validate(); err == nil {
		t.Error("expected multiplier below 1 to be rejected")
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("cancellation must not be retried")
	}
	if !DefaultRetryIf(errors.New("io")) {
		t.Error("ordinary errors should be retried")
	}
}
