package llm

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryConfig bounds the retry loop around a provider call.
type RetryConfig struct {
	MaxAttempts    int // total attempts including the first
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float64 // 0.0 to 1.0, fraction of the delay to randomize
}

// DefaultRetryConfig is tuned for Gemini free-tier rate limiting.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:    3,
	BaseDelay:      1 * time.Second,
	MaxDelay:       20 * time.Second,
	JitterFraction: 0.2,
}

// withRetry runs fn until it succeeds, returns a non-retryable error, the
// context ends, or attempts are exhausted. The delay honors a server retry
// hint when the error carries one, otherwise linear backoff plus jitter.
func withRetry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var pe *ProviderError
		if errors.As(err, &pe) && !pe.Retryable {
			return zero, err
		}
		if attempt == attempts {
			break
		}

		delay := time.Duration(attempt) * cfg.BaseDelay
		if hint := retryHintFrom(err); hint > 0 {
			delay = hint
		}
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		if cfg.JitterFraction > 0 {
			jitter := float64(delay) * cfg.JitterFraction * (rand.Float64()*2 - 1)
			delay += time.Duration(jitter)
			if delay < 0 {
				delay = cfg.BaseDelay
			}
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}
