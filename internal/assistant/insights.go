package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

// InsightSnapshot is a precomputed spending overview for dashboard-style
// surfaces that sit next to the chat assistant.
type InsightSnapshot struct {
	Currency     string                      `json:"currency"`
	WeekTotal    decimal.Decimal             `json:"week_total"`
	MonthTotal   decimal.Decimal             `json:"month_total"`
	MonthVsLast  decimal.Decimal             `json:"month_vs_last"`
	BudgetTotals map[string]decimal.Decimal  `json:"budget_totals"`
	TopExpenses  []model.BypassExpense       `json:"top_expenses"`
	Recurring    []*model.RecurringCandidate `json:"recurring,omitempty"`
	ComputedAt   time.Time                   `json:"computed_at"`
}

// InsightsService computes snapshots with a bounded TTL cache in front.
type InsightsService struct {
	contexts *ContextBuilder
	cache    *snapshotCache
	now      func() time.Time
}

// NewInsightsService creates the service. ttl bounds snapshot staleness.
func NewInsightsService(contexts *ContextBuilder, ttl time.Duration) *InsightsService {
	return &InsightsService{
		contexts: contexts,
		cache:    newSnapshotCache(ttl),
		now:      time.Now,
	}
}

// Snapshot returns the cached overview when fresh, recomputing otherwise.
func (s *InsightsService) Snapshot(ctx context.Context, userID, currency string) (*InsightSnapshot, error) {
	key := fmt.Sprintf("%s|overview|%s", userID, currency)
	if snap, ok := s.cache.get(key); ok {
		return snap, nil
	}

	now := s.now()
	uc, err := s.contexts.Prepare(ctx, userID, fullContextWindow, now)
	if err != nil {
		return nil, fmt.Errorf("prepare context: %w", err)
	}

	nameByID := uc.BudgetNameByID()
	weekStart, weekEnd := WeekRange(now)
	monthStart, monthEnd := MonthRange(now)
	weekTxs := FilterByDateRange(uc.LastTransactions, weekStart, weekEnd)
	monthTxs := FilterByDateRange(uc.LastTransactions, monthStart, monthEnd)
	comparison := CompareMonthTotals(monthTxs, uc.LastMonthTxs)

	var top []model.BypassExpense
	for _, tx := range TopExpenses(monthTxs, promptTopExpenses) {
		top = append(top, model.BypassExpense{
			Title:  tx.Title,
			Amount: tx.Amount,
			Date:   tx.CreatedAt.Format("2006-01-02"),
		})
	}

	snap := &InsightSnapshot{
		Currency:     currency,
		WeekTotal:    SumExpenses(weekTxs),
		MonthTotal:   comparison.TotalThis,
		MonthVsLast:  comparison.Diff,
		BudgetTotals: BudgetTotals(monthTxs, nameByID),
		TopExpenses:  top,
		Recurring:    uc.RecurringCandidates,
		ComputedAt:   now,
	}
	s.cache.put(key, snap)
	return snap, nil
}
