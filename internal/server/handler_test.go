package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendora/assistant/internal/assistant"
	"github.com/spendora/assistant/internal/auth"
	"github.com/spendora/assistant/internal/llm"
	"github.com/spendora/assistant/internal/model"
)

type fakePipeline struct {
	result   *assistant.Result
	err      error
	lastReq  *assistant.Request
	parseRes assistant.ParseResult
}

func (f *fakePipeline) Handle(_ context.Context, req *assistant.Request) (*assistant.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePipeline) ParseQuick(_ context.Context, userID, input string) (assistant.ParseResult, error) {
	if f.err != nil {
		return assistant.ParseResult{}, f.err
	}
	return f.parseRes, nil
}

type fakeInsights struct {
	snapshot *assistant.InsightSnapshot
	err      error
}

func (f *fakeInsights) Snapshot(_ context.Context, userID, currency string) (*assistant.InsightSnapshot, error) {
	return f.snapshot, f.err
}

func newTestServer(p Pipeline, ins Insights) *httptest.Server {
	mux := http.NewServeMux()
	NewHandler(p, ins, zerolog.Nop(), true).Register(mux)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestChat_MessageResponse(t *testing.T) {
	pipeline := &fakePipeline{result: &assistant.Result{
		Response: &model.AssistantResponse{
			Kind:    model.ResponseKindMessage,
			Message: &model.MessageResponse{Text: "done"},
			Meta: model.ResponseMeta{
				RequestID:     "req-1",
				PromptVersion: "v3",
				Intent:        "unknown",
				Period:        "unknown",
				Locale:        "en",
				Currency:      "USD",
			},
		},
	}}
	srv := newTestServer(pipeline, &fakeInsights{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/assistant/chat",
		`{"userId":"user-1","message":"hello","locale":"en"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "v3", resp.Header.Get("X-Prompt-Version"))
	assert.Equal(t, "USD", resp.Header.Get("X-Currency"))
	assert.Empty(t, resp.Header.Get("X-Assistant-Bypass"))

	var body model.AssistantResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, model.ResponseKindMessage, body.Kind)
	assert.Equal(t, "done", body.Message.Text)

	require.NotNil(t, pipeline.lastReq)
	assert.Equal(t, "user-1", pipeline.lastReq.UserID)
	assert.True(t, pipeline.lastReq.EnableLimits)
}

func TestChat_BypassHeaders(t *testing.T) {
	pipeline := &fakePipeline{result: &assistant.Result{
		Response: &model.AssistantResponse{
			Kind: model.ResponseKindBypass,
			Bypass: &model.BypassResponse{
				Period:   "thisWeek",
				Currency: "USD",
				Total:    decimal.Zero,
				Text:     "no spending",
			},
			Meta: model.ResponseMeta{BypassUsed: true, Period: "thisWeek"},
		},
	}}
	srv := newTestServer(pipeline, &fakeInsights{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/assistant/chat", `{"userId":"user-1","message":"this week?"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Assistant-Bypass"))
	assert.Equal(t, "thisWeek", resp.Header.Get("X-Assistant-Period"))
}

func TestChat_StreamedText(t *testing.T) {
	stream := llm.NewStream(4)
	go func() {
		ctx := context.Background()
		stream.Push(ctx, "hello ")
		stream.Push(ctx, "world")
		stream.Close(nil)
	}()
	pipeline := &fakePipeline{result: &assistant.Result{
		Response: &model.AssistantResponse{
			Kind: model.ResponseKindStream,
			Meta: model.ResponseMeta{Provider: "gemini", Model: "gemini-test"},
		},
		Stream: stream,
	}}
	srv := newTestServer(pipeline, &fakeInsights{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/assistant/chat", `{"userId":"user-1","message":"analyze"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gemini", resp.Header.Get("X-Assistant-Provider"))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(body))
}

func TestChat_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad request", assistant.ErrBadRequest, http.StatusBadRequest},
		{"unknown user", auth.ErrUnknownUser, http.StatusUnauthorized},
		{"rate limited", assistant.ErrRateLimited, http.StatusTooManyRequests},
		{"provider down", &llm.ProviderError{Provider: "gemini", Code: llm.ErrCodeUnavailable}, http.StatusBadGateway},
		{"internal", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakePipeline{err: tt.err}, &fakeInsights{})
			defer srv.Close()

			resp := postJSON(t, srv.URL+"/v1/assistant/chat", `{"userId":"user-1","message":"x"}`)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, &fakeInsights{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/assistant/chat", `{not json`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParse(t *testing.T) {
	pipeline := &fakePipeline{parseRes: assistant.ParseResult{
		Items: []assistant.ParsedTransaction{{Title: "Coffee", Amount: decimal.RequireFromString("4.50")}},
	}}
	srv := newTestServer(pipeline, &fakeInsights{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/assistant/parse", `{"userId":"user-1","input":"Coffee 4.50"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result assistant.ParseResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Coffee", result.Items[0].Title)

	missing := postJSON(t, srv.URL+"/v1/assistant/parse", `{"userId":"user-1"}`)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
}

func TestInsights(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, &fakeInsights{
		snapshot: &assistant.InsightSnapshot{Currency: "USD"},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/assistant/insights?userId=user-1&currency=USD")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap assistant.InsightSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "USD", snap.Currency)

	noUser, err := http.Get(srv.URL + "/v1/assistant/insights")
	require.NoError(t, err)
	defer noUser.Body.Close()
	assert.Equal(t, http.StatusBadRequest, noUser.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, &fakeInsights{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
