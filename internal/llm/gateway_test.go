package llm

import (
	"context"
	"strings"
	"testing"
)

func TestEmitChunked(t *testing.T) {
	text := strings.Repeat("a", 200)
	s := NewStream(8)
	done := make(chan struct{})
	go func() {
		emitChunked(context.Background(), s, text)
		s.Close(nil)
		close(done)
	}()

	var got strings.Builder
	chunks := 0
	for chunk := range s.Chunks() {
		got.WriteString(chunk)
		chunks++
		if len(chunk) > chunkRunes {
			t.Errorf("chunk length %d exceeds %d", len(chunk), chunkRunes)
		}
	}
	<-done

	if got.String() != text {
		t.Fatalf("reassembled text differs from input, len %d vs %d", got.Len(), len(text))
	}
	if chunks != 3 {
		t.Errorf("expected 3 chunks for 200 runes, got %d", chunks)
	}
	if s.Err() != nil {
		t.Errorf("unexpected stream error: %v", s.Err())
	}
	if s.Usage().ResponseChars != len(text) {
		t.Errorf("ResponseChars = %d, want %d", s.Usage().ResponseChars, len(text))
	}
}

func TestEmitChunkedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStream(0)
	emitChunked(ctx, s, strings.Repeat("b", 500))
	s.Close(ctx.Err())

	if _, ok := <-s.Chunks(); ok {
		t.Fatal("expected no chunks after cancellation")
	}
}

func TestStreamPushAccountsMultibyte(t *testing.T) {
	s := NewStream(1)
	s.Push(context.Background(), "кофе")
	s.Close(nil)

	want := len("кофе")
	if s.Usage().ResponseChars != want {
		t.Errorf("ResponseChars = %d, want %d", s.Usage().ResponseChars, want)
	}
}
