package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ProviderErrorCode classifies gateway failures.
type ProviderErrorCode string

const (
	ErrCodeUnavailable   ProviderErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeRateLimited   ProviderErrorCode = "PROVIDER_RATE_LIMITED"
	ErrCodeTimeout       ProviderErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeBadCredential ProviderErrorCode = "PROVIDER_BAD_CREDENTIAL"
	ErrCodeInternal      ProviderErrorCode = "PROVIDER_INTERNAL"
)

// ProviderError is the typed error the gateway raises once retries are
// exhausted, carrying the HTTP status the provider reported.
type ProviderError struct {
	Provider   string
	Code       ProviderErrorCode
	StatusCode int
	Message    string
	Retryable  bool
	RetryAfter time.Duration // server-supplied hint, zero when absent
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// classifyStatus maps an HTTP status to a code and retryability. 429 and 503
// are the transient statuses worth retrying; everything else fails fast.
func classifyStatus(provider string, status int, cause error) *ProviderError {
	pe := &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Cause:      cause,
	}
	switch {
	case status == 429:
		pe.Code, pe.Retryable = ErrCodeRateLimited, true
		pe.Message = "rate limited"
	case status == 503:
		pe.Code, pe.Retryable = ErrCodeUnavailable, true
		pe.Message = "service unavailable"
	case status == 401 || status == 403:
		pe.Code = ErrCodeBadCredential
		pe.Message = "credential rejected"
	default:
		pe.Code = ErrCodeInternal
		pe.Message = fmt.Sprintf("provider error (status %d)", status)
	}
	return pe
}

// retryDelayPattern matches the delay hints Gemini embeds in rate-limit
// messages, e.g. `retryDelay":"12s"` or "Please retry in 12.5s".
var retryDelayPattern = regexp.MustCompile(`retry(?:Delay[":\s]*|\s+in\s+)([0-9]+(?:\.[0-9]+)?)s`)

// retryHintFrom extracts a server-supplied retry delay from an error, zero
// when none is present.
func retryHintFrom(err error) time.Duration {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.RetryAfter > 0 {
		return pe.RetryAfter
	}
	if err == nil {
		return 0
	}
	m := retryDelayPattern.FindStringSubmatch(err.Error())
	if len(m) != 2 {
		return 0
	}
	secs, perr := strconv.ParseFloat(m[1], 64)
	if perr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
