package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider streams chat completions. The native API is incrementally
// streamed, so chunks are forwarded as they arrive with no re-chunking and
// no internal retry.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates the provider.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// StreamText opens the completion stream and forwards deltas. Opening the
// stream performs the request, so unreachable-provider errors surface here,
// before any chunk.
func (p *OpenAIProvider) StreamText(ctx context.Context, req Request) (*Stream, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	sdkStream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, p.wrapError(err)
	}

	stream := NewStream(4)
	stream.usage.PromptChars = len(req.Prompt) + len(req.System)
	go func() {
		defer sdkStream.Close()
		sawText := false
		for {
			resp, err := sdkStream.Recv()
			if errors.Is(err, io.EOF) {
				if !sawText {
					stream.Push(ctx, EmptyCandidatesText)
				}
				stream.Close(nil)
				return
			}
			if err != nil {
				stream.Close(p.wrapError(err))
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			sawText = true
			if !stream.Push(ctx, delta) {
				stream.Close(ctx.Err())
				return
			}
		}
	}()
	return stream, nil
}

func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(ProviderOpenAI, apiErr.HTTPStatusCode, err)
	}
	return &ProviderError{
		Provider: ProviderOpenAI,
		Code:     ErrCodeUnavailable,
		Message:  "request failed",
		Cause:    err,
	}
}
