// Package llm is the uniform streaming gateway over the concrete
// language-model providers.
package llm

import (
	"context"
	"time"
)

// Provider names. These are wire-visible (response headers, usage logs).
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// EmptyCandidatesText is the sentinel chunk emitted when a provider returns
// a well-formed response with no usable text. Consumers pattern-match on it
// to show a friendly retry hint instead of raw provider internals.
const EmptyCandidatesText = "provider returned empty text candidates"

// Request is a single prompt submission.
type Request struct {
	Model  string
	System string
	Prompt string
}

// Usage is the size accounting attached to a finished stream.
type Usage struct {
	PromptChars   int
	ResponseChars int
}

// Stream delivers incremental text chunks. The channel closes when the
// stream ends; Err and Usage are valid only after that.
type Stream struct {
	ch    chan string
	err   error
	usage Usage
}

// NewStream creates a producer-side stream. Providers and stream wrappers
// push chunks with Push and finish with Close.
func NewStream(buffer int) *Stream {
	return &Stream{ch: make(chan string, buffer)}
}

// Chunks returns the receive side of the stream.
func (s *Stream) Chunks() <-chan string {
	return s.ch
}

// Err reports the terminal error, nil on clean completion. Valid after
// Chunks is closed.
func (s *Stream) Err() error {
	return s.err
}

// Usage reports size accounting. Valid after Chunks is closed.
func (s *Stream) Usage() Usage {
	return s.usage
}

// Push forwards one chunk unless the consumer went away.
func (s *Stream) Push(ctx context.Context, text string) bool {
	select {
	case s.ch <- text:
		s.usage.ResponseChars += len(text)
		return true
	case <-ctx.Done():
		return false
	}
}

// Close ends the stream with err as the terminal error, nil on clean
// completion. Call exactly once, after the last Push.
func (s *Stream) Close(err error) {
	s.err = err
	close(s.ch)
}

// Provider is one concrete model backend. StreamText must fail before the
// first chunk when the provider is unreachable, so callers can return a
// clean error instead of a broken partial response.
type Provider interface {
	Name() string
	StreamText(ctx context.Context, req Request) (*Stream, error)
}

// Re-chunking parameters for providers whose native API returns one block.
// The small delay simulates incremental delivery.
const (
	chunkRunes = 80
	chunkDelay = 30 * time.Millisecond
)

// emitChunked splits text into fixed-size rune chunks with a short pause
// between them.
func emitChunked(ctx context.Context, s *Stream, text string) {
	runes := []rune(text)
	for start := 0; start < len(runes); start += chunkRunes {
		end := start + chunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		if !s.Push(ctx, string(runes[start:end])) {
			return
		}
		if end < len(runes) {
			select {
			case <-time.After(chunkDelay):
			case <-ctx.Done():
				return
			}
		}
	}
}
