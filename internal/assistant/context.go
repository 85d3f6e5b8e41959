package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/spendora/assistant/internal/model"
	"github.com/spendora/assistant/internal/store"
)

// Transaction window sizes. The full pipeline wants enough history for
// month-over-month aggregates; quick action parsing only needs budgets plus
// a small recent slice.
const (
	fullContextWindow  = 200
	quickContextWindow = 30
)

// ContextBuilder assembles the per-request UserContext from the data store.
type ContextBuilder struct {
	store             store.Store
	recurringEnabled  bool
	recurringWindowDs int
}

// NewContextBuilder creates a builder. recurringEnabled gates candidate
// detection; when off Prepare returns an empty candidate list at no cost.
func NewContextBuilder(st store.Store, recurringEnabled bool) *ContextBuilder {
	return &ContextBuilder{
		store:             st,
		recurringEnabled:  recurringEnabled,
		recurringWindowDs: 120,
	}
}

// Prepare fetches the user's budgets and a bounded recent transaction window
// (newest first) and derives the previous-month slice from it. Previous-month
// rows older than the window are not included.
func (b *ContextBuilder) Prepare(ctx context.Context, userID string, windowSize int, now time.Time) (*model.UserContext, error) {
	budgets, err := b.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch budgets: %w", err)
	}

	txs, err := b.store.ListRecentTransactions(ctx, userID, windowSize)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	lastMonthStart, lastMonthEnd := LastMonthRange(now)
	uc := &model.UserContext{
		Budgets:          budgets,
		LastTransactions: txs,
		LastMonthTxs:     FilterByDateRange(txs, lastMonthStart, lastMonthEnd),
	}
	if b.recurringEnabled {
		uc.RecurringCandidates = FindRecurringCandidates(txs, b.recurringWindowDs, now)
	}
	return uc, nil
}
