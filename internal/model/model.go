// Package model defines the domain types shared across the assistant pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction is a single ledger row owned by the data store. The pipeline
// only ever reads a bounded recent window and writes new rows when a
// confirmed add-transaction action executes.
type Transaction struct {
	ID             string
	UserID         string
	Title          string
	Amount         decimal.Decimal
	Type           TransactionType
	BudgetFolderID *string
	CreatedAt      time.Time
}

// Budget is a named folder transactions can be assigned to. A transaction
// assigned to a budget inherits the budget's type.
type Budget struct {
	ID     string
	UserID string
	Name   string
	Emoji  string
	Type   TransactionType
	Amount decimal.Decimal
}

// Cadence is the recurrence interval class of a detected pattern.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// RecurringCandidate is derived purely from transaction history. It becomes
// persistent only when the user confirms a save-as-recurring action.
type RecurringCandidate struct {
	TitlePattern   string          `json:"title_pattern"`
	BudgetFolderID *string         `json:"budget_folder_id,omitempty"`
	AvgAmount      decimal.Decimal `json:"avg_amount"`
	Cadence        Cadence         `json:"cadence"`
	NextDueDate    string          `json:"next_due_date"` // ISO date
	Count          int             `json:"count"`
}

// RecurringRule is the persisted form of a confirmed candidate. At most one
// active rule exists per (user, normalized title).
type RecurringRule struct {
	UserID         string
	TitlePattern   string
	BudgetFolderID *string
	AvgAmount      decimal.Decimal
	Cadence        Cadence
	NextDueDate    string
	UpdatedAt      time.Time
}

// UserContext is assembled fresh per request and never persisted.
// LastTransactions is a bounded window, newest first. LastMonthTxs is derived
// from that window, so previous-month rows outside the window are not
// included.
type UserContext struct {
	Budgets             []*Budget
	LastTransactions    []*Transaction
	LastMonthTxs        []*Transaction
	RecurringCandidates []*RecurringCandidate
}

// BudgetNameByID builds the lookup used to attribute transactions to display
// names in aggregates.
func (c *UserContext) BudgetNameByID() map[string]string {
	names := make(map[string]string, len(c.Budgets))
	for _, b := range c.Budgets {
		names[b.ID] = b.Name
	}
	return names
}

// UsageLogEntry is the append-only audit record written once per request that
// reaches the bypass or provider-call stage.
type UsageLogEntry struct {
	UserID         string
	Provider       string
	Model          string
	PromptLength   int
	ResponseLength int
	Success        bool
	ErrorMessage   string
	BlockReason    string
	Intent         string
	Period         string
	BypassUsed     bool
	CreatedAt      time.Time
}
