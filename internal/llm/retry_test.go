package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		BaseDelay:      time.Millisecond,
		MaxDelay:       10 * time.Millisecond,
		JitterFraction: 0,
	}
}

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	attempts := 0
	result, err := withRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) (string, error) {
		attempts++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected 'ok', got %q", result)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	attempts := 0
	result, err := withRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &ProviderError{
				Provider:  ProviderGemini,
				Code:      ErrCodeUnavailable,
				Message:   "transient",
				Retryable: true,
			}
		}
		return "recovered", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "recovered" {
		t.Fatalf("expected 'recovered', got %q", result)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_NonRetryableFailsFast(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &ProviderError{
			Provider: ProviderGemini,
			Code:     ErrCodeBadCredential,
			Message:  "credential rejected",
		}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt for non-retryable error, got %d", attempts)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &ProviderError{
			Provider:  ProviderGemini,
			Code:      ErrCodeRateLimited,
			Message:   "rate limited",
			Retryable: true,
		}
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if pe.Code != ErrCodeRateLimited {
		t.Fatalf("expected rate limited code, got %s", pe.Code)
	}
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetryConfig()
	cfg.BaseDelay = time.Second
	cfg.MaxDelay = time.Second

	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := withRetry(ctx, cfg, func(ctx context.Context) (string, error) {
		attempts++
		return "", &ProviderError{Retryable: true, Code: ErrCodeUnavailable}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestRetryHintFrom(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{
			name: "provider error with explicit hint",
			err:  &ProviderError{RetryAfter: 5 * time.Second},
			want: 5 * time.Second,
		},
		{
			name: "gemini retryDelay json fragment",
			err:  fmt.Errorf(`429 RESOURCE_EXHAUSTED: {"retryDelay":"12s"}`),
			want: 12 * time.Second,
		},
		{
			name: "please retry in seconds",
			err:  fmt.Errorf("quota exceeded, please retry in 2.5s"),
			want: 2500 * time.Millisecond,
		},
		{
			name: "no hint",
			err:  fmt.Errorf("internal error"),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryHintFrom(tt.err); got != tt.want {
				t.Errorf("retryHintFrom(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantCode  ProviderErrorCode
		retryable bool
	}{
		{429, ErrCodeRateLimited, true},
		{503, ErrCodeUnavailable, true},
		{401, ErrCodeBadCredential, false},
		{403, ErrCodeBadCredential, false},
		{500, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		pe := classifyStatus(ProviderOpenAI, tt.status, nil)
		if pe.Code != tt.wantCode {
			t.Errorf("status %d: code = %s, want %s", tt.status, pe.Code, tt.wantCode)
		}
		if pe.Retryable != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.status, pe.Retryable, tt.retryable)
		}
		if pe.StatusCode != tt.status {
			t.Errorf("status %d: StatusCode = %d", tt.status, pe.StatusCode)
		}
	}
}
