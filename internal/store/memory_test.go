package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendora/assistant/internal/model"
)

func memTx(id, userID string, createdAt time.Time) *model.Transaction {
	return &model.Transaction{
		ID:        id,
		UserID:    userID,
		Title:     id,
		Amount:    decimal.RequireFromString("10"),
		Type:      model.TransactionTypeExpense,
		CreatedAt: createdAt,
	}
}

func TestMemoryStore_ListRecentTransactions(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	s.SeedTransaction(memTx("old", "user-1", now.Add(-48*time.Hour)))
	s.SeedTransaction(memTx("new", "user-1", now))
	s.SeedTransaction(memTx("mid", "user-1", now.Add(-24*time.Hour)))
	s.SeedTransaction(memTx("other", "user-2", now))

	txs, err := s.ListRecentTransactions(context.Background(), "user-1", 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "new", txs[0].ID, "newest first")
	assert.Equal(t, "mid", txs[1].ID)
}

func TestMemoryStore_CreateTransactionRejectsDuplicateID(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	require.NoError(t, s.CreateTransaction(context.Background(), memTx("t1", "user-1", now)))
	assert.Error(t, s.CreateTransaction(context.Background(), memTx("t1", "user-1", now)))
	assert.Error(t, s.CreateTransaction(context.Background(), &model.Transaction{UserID: "user-1"}))
}

func TestMemoryStore_UpsertRecurringRuleReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rule := &model.RecurringRule{
		UserID:       "user-1",
		TitlePattern: "netflix",
		AvgAmount:    decimal.RequireFromString("9.99"),
		Cadence:      model.CadenceMonthly,
	}
	require.NoError(t, s.UpsertRecurringRule(ctx, rule))

	updated := &model.RecurringRule{
		UserID:       "user-1",
		TitlePattern: "netflix",
		AvgAmount:    decimal.RequireFromString("12.99"),
		Cadence:      model.CadenceMonthly,
	}
	require.NoError(t, s.UpsertRecurringRule(ctx, updated))

	rules, err := s.ListRecurringRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, rules, 1, "same user and title pattern must replace, not duplicate")
	assert.True(t, rules[0].AvgAmount.Equal(decimal.RequireFromString("12.99")))

	// A different user with the same pattern is a separate rule.
	other := &model.RecurringRule{UserID: "user-2", TitlePattern: "netflix", Cadence: model.CadenceMonthly}
	require.NoError(t, s.UpsertRecurringRule(ctx, other))
	rules, err = s.ListRecurringRules(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestMemoryStore_CountUsageSince(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	dayStart := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	entries := []*model.UsageLogEntry{
		{UserID: "user-1", CreatedAt: dayStart.Add(-time.Minute)}, // yesterday
		{UserID: "user-1", CreatedAt: dayStart},                   // boundary counts
		{UserID: "user-1", CreatedAt: dayStart.Add(3 * time.Hour)},
		{UserID: "user-2", CreatedAt: dayStart.Add(time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, s.AppendUsageLog(ctx, e))
	}

	count, err := s.CountUsageSince(ctx, "user-1", dayStart)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCentsRoundTrip(t *testing.T) {
	tests := []string{"4.50", "0.01", "1234.56", "9.99"}
	for _, s := range tests {
		d := decimal.RequireFromString(s)
		got := fromCents(centsOf(d), d.InexactFloat64())
		assert.True(t, got.Equal(d), "%s round-tripped to %s", d, got)
	}
	// Zero cents falls back to the float value.
	assert.True(t, fromCents(0, 2.5).Equal(decimal.RequireFromString("2.5")))
}

func TestOptionalID(t *testing.T) {
	assert.Equal(t, "", optionalID(nil))
	id := "b1"
	assert.Equal(t, "b1", optionalID(&id))
	assert.Nil(t, optionalIDPtr(""))
	require.NotNil(t, optionalIDPtr("b1"))
	assert.Equal(t, "b1", *optionalIDPtr("b1"))
}
