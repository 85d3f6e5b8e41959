package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API. The API answers in one block, so
// successful output is re-chunked for incremental delivery; transient
// failures (429/503/timeout) are retried here with a bounded backoff loop so
// the orchestrator never retries on top of us.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	retry   RetryConfig
	timeout time.Duration
}

// NewGeminiProvider creates the provider. maxRetries bounds total attempts
// at maxRetries+1.
func NewGeminiProvider(ctx context.Context, apiKey, model string, maxRetries int, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	retry := DefaultRetryConfig
	if maxRetries >= 0 {
		retry.MaxAttempts = maxRetries + 1
	}
	return &GeminiProvider{
		client:  client,
		model:   model,
		retry:   retry,
		timeout: timeout,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// StreamText submits the prompt and streams the response in fixed-size
// chunks. It fails before the first chunk on any terminal provider error.
func (p *GeminiProvider) StreamText(ctx context.Context, req Request) (*Stream, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Prompt}},
		},
	}
	var config *genai.GenerateContentConfig
	if req.System != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: req.System}},
			},
		}
	}

	text, err := withRetry(ctx, p.retry, func(ctx context.Context) (string, error) {
		callCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		resp, err := p.client.Models.GenerateContent(callCtx, model, contents, config)
		if err != nil {
			return "", p.wrapError(callCtx, err)
		}
		return resp.Text(), nil
	})
	if err != nil {
		return nil, err
	}

	stream := NewStream(4)
	stream.usage.PromptChars = len(req.Prompt) + len(req.System)
	go func() {
		defer stream.Close(nil)
		if text == "" {
			stream.Push(ctx, EmptyCandidatesText)
			return
		}
		emitChunked(ctx, stream, text)
	}()
	return stream, nil
}

// wrapError converts genai SDK errors into typed provider errors so the
// retry loop can distinguish transient from terminal failures.
func (p *GeminiProvider) wrapError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		pe := classifyStatus(ProviderGemini, apiErr.Code, err)
		pe.RetryAfter = retryHintFrom(err)
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || (ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		return &ProviderError{
			Provider:  ProviderGemini,
			Code:      ErrCodeTimeout,
			Message:   "request timed out",
			Retryable: true,
			Cause:     err,
		}
	}
	return &ProviderError{
		Provider: ProviderGemini,
		Code:     ErrCodeUnavailable,
		Message:  "request failed",
		Cause:    err,
	}
}
