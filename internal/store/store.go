// Package store defines the data-store collaborator the assistant pipeline
// reads and writes through.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/spendora/assistant/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the interface over the external data store. The pipeline treats
// it as bounded reads plus append/insert/upsert; it owns no schema beyond
// that.
type Store interface {
	// ListBudgets returns every budget belonging to the user.
	ListBudgets(ctx context.Context, userID string) ([]*model.Budget, error)

	// ListRecentTransactions returns at most limit transactions for the
	// user, newest first.
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error)

	// CreateTransaction inserts a new transaction row.
	CreateTransaction(ctx context.Context, tx *model.Transaction) error

	// UpsertRecurringRule inserts or replaces the rule keyed by
	// (UserID, TitlePattern).
	UpsertRecurringRule(ctx context.Context, rule *model.RecurringRule) error

	// ListRecurringRules returns the user's saved recurring rules.
	ListRecurringRules(ctx context.Context, userID string) ([]*model.RecurringRule, error)

	// AppendUsageLog writes one append-only usage record.
	AppendUsageLog(ctx context.Context, entry *model.UsageLogEntry) error

	// CountUsageSince counts the user's usage-log rows created at or after
	// since.
	CountUsageSince(ctx context.Context, userID string, since time.Time) (int, error)
}
