// Package server is the HTTP surface of the assistant: request decoding,
// header projection of response metadata, and stream forwarding.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/spendora/assistant/internal/assistant"
	"github.com/spendora/assistant/internal/auth"
	"github.com/spendora/assistant/internal/i18n"
	"github.com/spendora/assistant/internal/llm"
	"github.com/spendora/assistant/internal/logging"
	"github.com/spendora/assistant/internal/model"
)

// Pipeline is the orchestrator surface the handler depends on.
type Pipeline interface {
	Handle(ctx context.Context, req *assistant.Request) (*assistant.Result, error)
	ParseQuick(ctx context.Context, userID, input string) (assistant.ParseResult, error)
}

// Insights is the cached-snapshot surface.
type Insights interface {
	Snapshot(ctx context.Context, userID, currency string) (*assistant.InsightSnapshot, error)
}

// Handler serves the assistant endpoints.
type Handler struct {
	pipeline     Pipeline
	insights     Insights
	log          zerolog.Logger
	enableLimits bool
}

// NewHandler creates the handler. enableLimits gates the free-tier daily
// request cap.
func NewHandler(pipeline Pipeline, insights Insights, log zerolog.Logger, enableLimits bool) *Handler {
	return &Handler{pipeline: pipeline, insights: insights, log: log, enableLimits: enableLimits}
}

// Register mounts the routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assistant/chat", h.handleChat)
	mux.HandleFunc("POST /v1/assistant/parse", h.handleParse)
	mux.HandleFunc("GET /v1/assistant/insights", h.handleInsights)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

type chatRequest struct {
	UserID   string               `json:"userId"`
	Message  string               `json:"message"`
	Confirm  bool                 `json:"confirm"`
	Action   *model.PendingAction `json:"action,omitempty"`
	IsPro    bool                 `json:"isPro"`
	Locale   string               `json:"locale"`
	Currency string               `json:"currency"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	log := h.log.With().Str("userId", body.UserID).Logger()
	ctx := logging.WithContext(r.Context(), log)

	result, err := h.pipeline.Handle(ctx, &assistant.Request{
		UserID:       body.UserID,
		IsPro:        body.IsPro,
		EnableLimits: h.enableLimits,
		Message:      body.Message,
		Confirm:      body.Confirm,
		Action:       body.Action,
		Locale:       body.Locale,
		Currency:     body.Currency,
	})
	if err != nil {
		h.writeChatError(w, body.Locale, err)
		return
	}

	setMetaHeaders(w.Header(), result.Response.Meta)

	if result.Response.Kind == model.ResponseKindStream {
		h.streamText(w, body.Locale, result.Stream)
		return
	}
	writeJSON(w, http.StatusOK, result.Response)
}

// streamText forwards stream chunks as incremental text/plain. Headers are
// already committed, so a mid-stream provider failure can only append the
// fallback sentinel text.
func (h *Handler) streamText(w http.ResponseWriter, locale string, stream *llm.Stream) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for chunk := range stream.Chunks() {
		if _, err := w.Write([]byte(chunk)); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
		h.log.Error().Err(err).Msg("stream ended with error")
		w.Write([]byte("\n" + i18n.For(i18n.Resolve(locale)).ProviderDown))
	}
}

func (h *Handler) writeChatError(w http.ResponseWriter, locale string, err error) {
	msgs := i18n.For(i18n.Resolve(locale))
	var provErr *llm.ProviderError
	switch {
	case errors.Is(err, assistant.ErrBadRequest):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUnknownUser):
		writeJSONError(w, http.StatusUnauthorized, "unknown user")
	case errors.Is(err, assistant.ErrRateLimited):
		writeJSONError(w, http.StatusTooManyRequests, assistant.ErrRateLimited.Error())
	case errors.As(err, &provErr):
		h.log.Error().Err(err).Msg("provider call failed")
		writeJSONError(w, http.StatusBadGateway, msgs.ProviderDown)
	default:
		h.log.Error().Err(err).Msg("chat request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

type parseRequest struct {
	UserID string `json:"userId"`
	Input  string `json:"input"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var body parseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.UserID == "" || body.Input == "" {
		writeJSONError(w, http.StatusBadRequest, "userId and input are required")
		return
	}
	ctx := logging.WithContext(r.Context(), h.log)
	result, err := h.pipeline.ParseQuick(ctx, body.UserID, body.Input)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			writeJSONError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		h.log.Error().Err(err).Msg("parse request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "userId is required")
		return
	}
	currency := r.URL.Query().Get("currency")
	ctx := logging.WithContext(r.Context(), h.log)
	snapshot, err := h.insights.Snapshot(ctx, userID, currency)
	if err != nil {
		h.log.Error().Err(err).Str("userId", userID).Msg("insights snapshot failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func setMetaHeaders(header http.Header, meta model.ResponseMeta) {
	set := func(key, value string) {
		if value != "" {
			header.Set(key, value)
		}
	}
	set("X-Assistant-Provider", meta.Provider)
	set("X-Assistant-Model", meta.Model)
	set("X-Request-Id", meta.RequestID)
	set("X-Prompt-Version", meta.PromptVersion)
	set("X-Assistant-Intent", meta.Intent)
	set("X-Assistant-Period", meta.Period)
	set("X-Locale", meta.Locale)
	set("X-Currency", meta.Currency)
	if meta.BypassUsed {
		header.Set("X-Assistant-Bypass", "true")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
