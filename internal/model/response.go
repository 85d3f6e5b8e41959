package model

import "github.com/shopspring/decimal"

// ResponseKind tags the AssistantResponse union. Adding a new response shape
// means adding a constant here and a payload field below, so handlers that
// switch on Kind surface the gap at review time instead of at runtime.
type ResponseKind string

const (
	ResponseKindMessage ResponseKind = "message"
	ResponseKindAction  ResponseKind = "action"
	ResponseKindBypass  ResponseKind = "bypass"
	ResponseKindStream  ResponseKind = "stream"
)

// MessageResponse is a plain localized message, used for parse-ambiguity
// replies, executed-action results, and deterministic format hints.
type MessageResponse struct {
	Text string `json:"text"`
}

// ActionResponse carries a pending action plus the human-readable
// confirmation prompt. It never represents an executed action.
type ActionResponse struct {
	Action        *PendingAction `json:"action"`
	ConfirmPrompt string         `json:"confirm_prompt"`
}

// BypassResponse is the canonical non-model answer, returned when the
// question is answerable from aggregates alone.
type BypassResponse struct {
	Intent      string                     `json:"intent"`
	Period      string                     `json:"period"`
	Currency    string                     `json:"currency"`
	Total       decimal.Decimal            `json:"total"`
	Breakdown   map[string]decimal.Decimal `json:"breakdown"`
	TopExpenses []BypassExpense            `json:"top_expenses"`
	Text        string                     `json:"text"`
}

// BypassExpense is one line of the bypass top-expenses list.
type BypassExpense struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// ResponseMeta is the observability contract surfaced as response headers on
// every assistant reply.
type ResponseMeta struct {
	Provider      string
	Model         string
	RequestID     string
	PromptVersion string
	Intent        string
	Period        string
	Locale        string
	Currency      string
	BypassUsed    bool
}

// AssistantResponse is the discriminated result of one orchestrated request.
// Exactly one payload matching Kind is populated. Stream responses carry no
// JSON payload; the transport forwards chunks from the gateway directly.
type AssistantResponse struct {
	Kind    ResponseKind     `json:"kind"`
	Message *MessageResponse `json:"message,omitempty"`
	Action  *ActionResponse  `json:"action,omitempty"`
	Bypass  *BypassResponse  `json:"bypass,omitempty"`
	Meta    ResponseMeta     `json:"-"`
}
