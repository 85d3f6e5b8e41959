// Package assistant implements the AI assistant request pipeline: local
// deterministic parsing, triage, context assembly, prompt building and the
// provider hand-off.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendora/assistant/internal/auth"
	"github.com/spendora/assistant/internal/i18n"
	"github.com/spendora/assistant/internal/llm"
	"github.com/spendora/assistant/internal/logging"
	"github.com/spendora/assistant/internal/model"
	"github.com/spendora/assistant/internal/store"
)

// Sentinel errors the transport maps to status codes.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("daily request limit reached")
)

// Usage-log block reasons.
const (
	blockReasonLimit    = "daily_limit"
	blockReasonCanceled = "client_canceled"
)

// Options configures the orchestrator.
type Options struct {
	PreferredProvider string
	GeminiModel       string
	OpenAIModel       string
	MaxPromptChars    int
	FreeDailyLimit    int
	DefaultCurrency   string
}

// Request is one inbound chat/action request.
type Request struct {
	UserID       string
	IsPro        bool
	EnableLimits bool
	Message      string
	Confirm      bool
	Action       *model.PendingAction
	Locale       string
	Currency     string
}

// Result is the orchestrated outcome. Stream is set only when
// Response.Kind is stream; the caller must drain it.
type Result struct {
	Response *model.AssistantResponse
	Stream   *llm.Stream
}

// Orchestrator drives one request through verification, rate limiting,
// triage and, when nothing deterministic resolves it, the provider call.
type Orchestrator struct {
	store    store.Store
	verifier auth.Verifier
	registry *llm.Registry
	contexts *ContextBuilder
	opts     Options
	now      func() time.Time
}

// New creates an orchestrator.
func New(st store.Store, verifier auth.Verifier, registry *llm.Registry, contexts *ContextBuilder, opts Options) *Orchestrator {
	return &Orchestrator{
		store:    st,
		verifier: verifier,
		registry: registry,
		contexts: contexts,
		opts:     opts,
		now:      time.Now,
	}
}

// ParseQuick runs the local parser only, for the quick-add surface. The
// caller must still be a real principal.
func (o *Orchestrator) ParseQuick(ctx context.Context, userID, input string) (ParseResult, error) {
	if err := o.verifier.VerifyUser(ctx, userID); err != nil {
		return ParseResult{}, err
	}
	return ParseLocally(input, o.now()), nil
}

// Handle runs the full pipeline for one request.
func (o *Orchestrator) Handle(ctx context.Context, req *Request) (*Result, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if req.Message == "" && !(req.Confirm && req.Action != nil) {
		return nil, fmt.Errorf("%w: message is required", ErrBadRequest)
	}
	// Caller input participates in the prompt; clamping it up front keeps
	// oversized messages from inflating provider cost or sidestepping the
	// prompt budget downstream.
	if o.opts.MaxPromptChars > 0 && len(req.Message) > o.opts.MaxPromptChars {
		req.Message = req.Message[:o.opts.MaxPromptChars]
	}

	if err := o.verifier.VerifyUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	now := o.now()
	locale := i18n.Resolve(req.Locale)
	msgs := i18n.For(locale)
	currency := req.Currency
	if currency == "" {
		currency = o.opts.DefaultCurrency
	}

	intent := DetectIntent(req.Message)
	period := DetectPeriod(req.Message)
	meta := model.ResponseMeta{
		RequestID:     uuid.New().String(),
		PromptVersion: PromptVersion,
		Intent:        string(intent),
		Period:        string(period),
		Locale:        locale.String(),
		Currency:      currency,
	}
	entry := &model.UsageLogEntry{
		UserID: req.UserID,
		Intent: string(intent),
		Period: string(period),
	}

	if req.EnableLimits && !req.IsPro && o.opts.FreeDailyLimit > 0 {
		dayStart := now.UTC().Truncate(24 * time.Hour)
		count, err := o.store.CountUsageSince(ctx, req.UserID, dayStart)
		if err != nil {
			return nil, fmt.Errorf("count usage: %w", err)
		}
		if count >= o.opts.FreeDailyLimit {
			entry.Success = false
			entry.BlockReason = blockReasonLimit
			o.writeUsage(ctx, entry)
			return nil, ErrRateLimited
		}
	}

	// Triage, first match wins.

	// 1. Explicit confirmation: execute directly, bypassing all parsing.
	if req.Confirm && req.Action != nil {
		return o.executeAction(ctx, req, meta, entry, msgs, currency, now)
	}

	budgets, err := o.store.ListBudgets(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch budgets: %w", err)
	}

	// 2. Explicit "add ... to ... budget" command: never executes without
	// confirmation.
	if parsed := ParseAddCommand(req.Message, budgets); parsed != nil {
		if parsed.BudgetFolderID == nil {
			return o.messageResult(ctx, meta, entry,
				fmt.Sprintf(msgs.BudgetNotFound, parsed.BudgetName)), nil
		}
		action := &model.PendingAction{
			Type: model.ActionAddTransaction,
			AddTransaction: &model.AddTransactionAction{
				Title:          parsed.Title,
				Amount:         parsed.Amount,
				BudgetFolderID: parsed.BudgetFolderID,
				BudgetName:     parsed.BudgetName,
			},
		}
		prompt := fmt.Sprintf(msgs.ConfirmAdd,
			parsed.Amount.StringFixed(2), currency, parsed.Title, parsed.BudgetName)
		entry.Success = true
		o.writeUsage(ctx, entry)
		return &Result{Response: &model.AssistantResponse{
			Kind:   model.ResponseKindAction,
			Action: &model.ActionResponse{Action: action, ConfirmPrompt: prompt},
			Meta:   meta,
		}}, nil
	}

	// 3. Looks like an add attempt but didn't parse: deterministic format
	// hint, no model call.
	if LooksLikeAddAttempt(req.Message) {
		return o.messageResult(ctx, meta, entry, msgs.AddFormatHint), nil
	}

	// 4. Save-as-recurring confirmation phrasing.
	if hasSaveRecurringTrigger(strings.ToLower(req.Message)) {
		uc, err := o.contexts.Prepare(ctx, req.UserID, fullContextWindow, now)
		if err != nil {
			return nil, fmt.Errorf("prepare context: %w", err)
		}
		candidate := ParseSaveRecurringCommand(req.Message, uc.RecurringCandidates)
		if candidate == nil {
			return o.messageResult(ctx, meta, entry, msgs.NoCandidates), nil
		}
		action := &model.PendingAction{
			Type: model.ActionSaveRecurringRule,
			SaveRecurringRule: &model.SaveRecurringRuleAction{
				TitlePattern:   candidate.TitlePattern,
				BudgetFolderID: candidate.BudgetFolderID,
				AvgAmount:      candidate.AvgAmount,
				Cadence:        candidate.Cadence,
				NextDueDate:    candidate.NextDueDate,
			},
		}
		prompt := fmt.Sprintf(msgs.ConfirmRecurring,
			candidate.TitlePattern, i18n.CadenceLabel(locale, string(candidate.Cadence)),
			candidate.AvgAmount.StringFixed(2), currency)
		entry.Success = true
		o.writeUsage(ctx, entry)
		return &Result{Response: &model.AssistantResponse{
			Kind:   model.ResponseKindAction,
			Action: &model.ActionResponse{Action: action, ConfirmPrompt: prompt},
			Meta:   meta,
		}}, nil
	}

	// 5. Short "Coffee 4.50"-style utterances resolve locally into a
	// pending action.
	if local := ParseLocally(req.Message, now); !local.RequiresAI && len(local.Items) == 1 {
		item := local.Items[0]
		action := &model.PendingAction{
			Type: model.ActionAddTransaction,
			AddTransaction: &model.AddTransactionAction{
				Title:  item.Title,
				Amount: item.Amount,
			},
		}
		prompt := fmt.Sprintf(msgs.ConfirmAddNoBudg,
			item.Amount.StringFixed(2), currency, item.Title)
		entry.Success = true
		o.writeUsage(ctx, entry)
		return &Result{Response: &model.AssistantResponse{
			Kind:   model.ResponseKindAction,
			Action: &model.ActionResponse{Action: action, ConfirmPrompt: prompt},
			Meta:   meta,
		}}, nil
	}

	uc, err := o.contexts.Prepare(ctx, req.UserID, fullContextWindow, now)
	if err != nil {
		return nil, fmt.Errorf("prepare context: %w", err)
	}
	nameByID := uc.BudgetNameByID()

	// 6. Canonical bypass: a concrete week period with zero expenses is
	// answerable without a model call.
	if period == PeriodThisWeek || period == PeriodLastWeek {
		start, end := WeekRange(now)
		text := msgs.EmptyThisWeek
		if period == PeriodLastWeek {
			start, end = LastWeekRange(start)
			text = msgs.EmptyLastWeek
		}
		periodTxs := FilterByDateRange(uc.LastTransactions, start, end)
		total := SumExpenses(periodTxs)
		if total.IsZero() {
			meta.BypassUsed = true
			entry.Success = true
			entry.BypassUsed = true
			o.writeUsage(ctx, entry)
			return &Result{Response: &model.AssistantResponse{
				Kind: model.ResponseKindBypass,
				Bypass: &model.BypassResponse{
					Intent:    string(intent),
					Period:    string(period),
					Currency:  currency,
					Total:     total,
					Breakdown: BudgetTotals(periodTxs, nameByID),
					Text:      text,
				},
				Meta: meta,
			}}, nil
		}
	}

	// 7. Provider call.
	providerName, err := llm.Select(o.opts.PreferredProvider, o.registry.Credentials(), isComplexQuery(req.Message))
	if err != nil {
		entry.Success = false
		entry.ErrorMessage = err.Error()
		o.writeUsage(ctx, entry)
		return nil, fmt.Errorf("select provider: %w", err)
	}
	provider, err := o.registry.Get(providerName)
	if err != nil {
		return nil, err
	}
	modelName := o.modelFor(providerName)
	meta.Provider = providerName
	meta.Model = modelName
	entry.Provider = providerName
	entry.Model = modelName

	weekStart, weekEnd := WeekRange(now)
	monthStart, monthEnd := MonthRange(now)
	weekly := NewPromptSection("This week",
		weekStart, weekEnd, FilterByDateRange(uc.LastTransactions, weekStart, weekEnd), nameByID)
	monthly := NewPromptSection("This month",
		monthStart, monthEnd, FilterByDateRange(uc.LastTransactions, monthStart, monthEnd), nameByID)
	prompt := BuildPrompt(uc.Budgets, DefaultInstructions, weekly, monthly, req.Message, o.opts.MaxPromptChars)
	entry.PromptLength = len(prompt)

	log.Debug().
		Str("provider", providerName).
		Str("model", modelName).
		Int("promptChars", len(prompt)).
		Str("intent", string(intent)).
		Str("period", string(period)).
		Msg("dispatching prompt")

	src, err := provider.StreamText(ctx, llm.Request{Model: modelName, Prompt: prompt})
	if err != nil {
		entry.Success = false
		entry.ErrorMessage = err.Error()
		o.writeUsage(ctx, entry)
		return nil, fmt.Errorf("provider %s: %w", providerName, err)
	}

	return &Result{
		Response: &model.AssistantResponse{Kind: model.ResponseKindStream, Meta: meta},
		Stream:   o.relayWithUsage(ctx, src, entry),
	}, nil
}

// relayWithUsage forwards src into a fresh stream and writes the usage-log
// row once the relay ends, whether by completion, provider error, or client
// cancellation. The row is written on a detached context so a canceled
// request still gets accounted.
func (o *Orchestrator) relayWithUsage(ctx context.Context, src *llm.Stream, entry *model.UsageLogEntry) *llm.Stream {
	out := llm.NewStream(4)
	go func() {
		responseChars := 0
		canceled := false
		for chunk := range src.Chunks() {
			responseChars += len(chunk)
			if !out.Push(ctx, chunk) {
				canceled = true
				break
			}
		}
		entry.ResponseLength = responseChars

		var streamErr error
		switch {
		case canceled || ctx.Err() != nil:
			entry.Success = false
			entry.BlockReason = blockReasonCanceled
			streamErr = context.Canceled
		case src.Err() != nil:
			streamErr = src.Err()
			entry.Success = false
			entry.ErrorMessage = streamErr.Error()
		default:
			entry.Success = true
		}
		out.Close(streamErr)
		o.writeUsage(ctx, entry)
	}()
	return out
}

// executeAction runs a previously confirmed pending action. Execution
// failure is an ordinary message result, not a transport error; the pending
// action is consumed either way.
func (o *Orchestrator) executeAction(
	ctx context.Context,
	req *Request,
	meta model.ResponseMeta,
	entry *model.UsageLogEntry,
	msgs i18n.Messages,
	currency string,
	now time.Time,
) (*Result, error) {
	action := req.Action
	if err := action.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	log := logging.FromContext(ctx)

	switch action.Type {
	case model.ActionAddTransaction:
		add := action.AddTransaction
		txType := model.TransactionTypeExpense
		if add.BudgetFolderID != nil {
			budgets, err := o.store.ListBudgets(ctx, req.UserID)
			if err != nil {
				return nil, fmt.Errorf("fetch budgets: %w", err)
			}
			// A transaction filed under a budget inherits the budget's type.
			for _, b := range budgets {
				if b.ID == *add.BudgetFolderID {
					txType = b.Type
					break
				}
			}
		}
		tx := &model.Transaction{
			ID:             uuid.New().String(),
			UserID:         req.UserID,
			Title:          add.Title,
			Amount:         add.Amount,
			Type:           txType,
			BudgetFolderID: add.BudgetFolderID,
			CreatedAt:      now,
		}
		if err := o.store.CreateTransaction(ctx, tx); err != nil {
			log.Error().Err(err).Str("userId", req.UserID).Msg("add transaction failed")
			entry.ErrorMessage = err.Error()
			return o.failedResult(ctx, meta, entry, msgs.AddFailed), nil
		}
		text := fmt.Sprintf(msgs.AddDone, add.Title, add.Amount.StringFixed(2), currency)
		return o.messageResult(ctx, meta, entry, text), nil

	case model.ActionSaveRecurringRule:
		save := action.SaveRecurringRule
		rule := &model.RecurringRule{
			UserID:         req.UserID,
			TitlePattern:   save.TitlePattern,
			BudgetFolderID: save.BudgetFolderID,
			AvgAmount:      save.AvgAmount,
			Cadence:        save.Cadence,
			NextDueDate:    save.NextDueDate,
			UpdatedAt:      now,
		}
		if err := o.store.UpsertRecurringRule(ctx, rule); err != nil {
			log.Error().Err(err).Str("userId", req.UserID).Msg("save recurring rule failed")
			entry.ErrorMessage = err.Error()
			return o.failedResult(ctx, meta, entry, msgs.RecurringFailed), nil
		}
		return o.messageResult(ctx, meta, entry, fmt.Sprintf(msgs.RecurringSaved, save.TitlePattern)), nil
	}
	return nil, fmt.Errorf("%w: unknown action type %q", ErrBadRequest, action.Type)
}

// messageResult finalizes a deterministic branch with a successful usage row.
func (o *Orchestrator) messageResult(ctx context.Context, meta model.ResponseMeta, entry *model.UsageLogEntry, text string) *Result {
	entry.Success = true
	o.writeUsage(ctx, entry)
	return &Result{Response: &model.AssistantResponse{
		Kind:    model.ResponseKindMessage,
		Message: &model.MessageResponse{Text: text},
		Meta:    meta,
	}}
}

func (o *Orchestrator) failedResult(ctx context.Context, meta model.ResponseMeta, entry *model.UsageLogEntry, text string) *Result {
	entry.Success = false
	o.writeUsage(ctx, entry)
	return &Result{Response: &model.AssistantResponse{
		Kind:    model.ResponseKindMessage,
		Message: &model.MessageResponse{Text: text},
		Meta:    meta,
	}}
}

// writeUsage appends the usage-log row on a detached context so accounting
// survives client cancellation. Failures are logged and swallowed; usage
// accounting must never fail a user-visible request.
func (o *Orchestrator) writeUsage(ctx context.Context, entry *model.UsageLogEntry) {
	entry.CreatedAt = o.now()
	detached := context.WithoutCancel(ctx)
	if err := o.store.AppendUsageLog(detached, entry); err != nil {
		logger := logging.FromContext(ctx)
		logger.Error().Err(err).Str("userId", entry.UserID).Msg("append usage log failed")
	}
}

func (o *Orchestrator) modelFor(providerName string) string {
	switch providerName {
	case llm.ProviderOpenAI:
		return o.opts.OpenAIModel
	default:
		return o.opts.GeminiModel
	}
}

// isComplexQuery flags messages long or analytical enough to prefer the
// higher-capability provider.
func isComplexQuery(message string) bool {
	if len(message) > 100 {
		return true
	}
	lower := strings.ToLower(message)
	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
