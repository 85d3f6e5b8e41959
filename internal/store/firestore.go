package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/spendora/assistant/internal/model"
)

const (
	colBudgets        = "budgets"
	colTransactions   = "transactions"
	colUsageLogs      = "usageLogs"
	colRecurringRules = "recurringRules"
)

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{client: client}
}

// Documents persist amounts as float plus integer cents; decimals are
// reconstructed from cents on read so round-tripping stays exact.
type budgetDoc struct {
	ID          string
	UserID      string
	Name        string
	Emoji       string
	Type        string
	Amount      float64
	AmountCents int64
}

type transactionDoc struct {
	ID             string
	UserID         string
	Title          string
	Amount         float64
	AmountCents    int64
	Type           string
	BudgetFolderID string // empty means unassigned
	CreatedAt      time.Time
}

type recurringRuleDoc struct {
	UserID         string
	TitlePattern   string
	BudgetFolderID string
	AvgAmount      float64
	AvgAmountCents int64
	Cadence        string
	NextDueDate    string
	UpdatedAt      time.Time
}

type usageLogDoc struct {
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

func centsOf(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromCents(cents int64, fallback float64) decimal.Decimal {
	if cents != 0 {
		return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	}
	return decimal.NewFromFloat(fallback)
}

func optionalID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func optionalIDPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// ListBudgets returns every budget owned by the user.
func (s *FirestoreStore) ListBudgets(ctx context.Context, userID string) ([]*model.Budget, error) {
	iter := s.client.Collection(colBudgets).
		Where("UserID", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var budgets []*model.Budget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list budgets: %w", err)
		}
		var b budgetDoc
		if err := doc.DataTo(&b); err != nil {
			return nil, fmt.Errorf("parse budget %s: %w", doc.Ref.ID, err)
		}
		budgets = append(budgets, &model.Budget{
			ID:     b.ID,
			UserID: b.UserID,
			Name:   b.Name,
			Emoji:  b.Emoji,
			Type:   model.TransactionType(b.Type),
			Amount: fromCents(b.AmountCents, b.Amount),
		})
	}
	return budgets, nil
}

// ListRecentTransactions returns the newest transactions first, capped at
// limit.
func (s *FirestoreStore) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	iter := s.client.Collection(colTransactions).
		Where("UserID", "==", userID).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var txs []*model.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		var t transactionDoc
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("parse transaction %s: %w", doc.Ref.ID, err)
		}
		txs = append(txs, &model.Transaction{
			ID:             t.ID,
			UserID:         t.UserID,
			Title:          t.Title,
			Amount:         fromCents(t.AmountCents, t.Amount),
			Type:           model.TransactionType(t.Type),
			BudgetFolderID: optionalIDPtr(t.BudgetFolderID),
			CreatedAt:      t.CreatedAt,
		})
	}
	return txs, nil
}

// CreateTransaction inserts a new row keyed by the transaction ID.
func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	doc := transactionDoc{
		ID:             tx.ID,
		UserID:         tx.UserID,
		Title:          tx.Title,
		Amount:         tx.Amount.InexactFloat64(),
		AmountCents:    centsOf(tx.Amount),
		Type:           string(tx.Type),
		BudgetFolderID: optionalID(tx.BudgetFolderID),
		CreatedAt:      tx.CreatedAt,
	}
	if _, err := s.client.Collection(colTransactions).Doc(tx.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// UpsertRecurringRule sets the rule document keyed by user and normalized
// title, which enforces the one-active-rule invariant.
func (s *FirestoreStore) UpsertRecurringRule(ctx context.Context, rule *model.RecurringRule) error {
	doc := recurringRuleDoc{
		UserID:         rule.UserID,
		TitlePattern:   rule.TitlePattern,
		BudgetFolderID: optionalID(rule.BudgetFolderID),
		AvgAmount:      rule.AvgAmount.InexactFloat64(),
		AvgAmountCents: centsOf(rule.AvgAmount),
		Cadence:        string(rule.Cadence),
		NextDueDate:    rule.NextDueDate,
		UpdatedAt:      rule.UpdatedAt,
	}
	docID := fmt.Sprintf("%s:%s", rule.UserID, rule.TitlePattern)
	if _, err := s.client.Collection(colRecurringRules).Doc(docID).Set(ctx, doc); err != nil {
		return fmt.Errorf("upsert recurring rule: %w", err)
	}
	return nil
}

// ListRecurringRules returns the user's saved rules.
func (s *FirestoreStore) ListRecurringRules(ctx context.Context, userID string) ([]*model.RecurringRule, error) {
	iter := s.client.Collection(colRecurringRules).
		Where("UserID", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var rules []*model.RecurringRule
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list recurring rules: %w", err)
		}
		var r recurringRuleDoc
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("parse recurring rule %s: %w", doc.Ref.ID, err)
		}
		rules = append(rules, &model.RecurringRule{
			UserID:         r.UserID,
			TitlePattern:   r.TitlePattern,
			BudgetFolderID: optionalIDPtr(r.BudgetFolderID),
			AvgAmount:      fromCents(r.AvgAmountCents, r.AvgAmount),
			Cadence:        model.Cadence(r.Cadence),
			NextDueDate:    r.NextDueDate,
			UpdatedAt:      r.UpdatedAt,
		})
	}
	return rules, nil
}

// AppendUsageLog writes one append-only usage record with a generated ID.
func (s *FirestoreStore) AppendUsageLog(ctx context.Context, entry *model.UsageLogEntry) error {
	doc := usageLogDoc{
		UserID:         entry.UserID,
		Provider:       entry.Provider,
		Model:          entry.Model,
		PromptLength:   entry.PromptLength,
		ResponseLength: entry.ResponseLength,
		Success:        entry.Success,
		ErrorMessage:   entry.ErrorMessage,
		BlockReason:    entry.BlockReason,
		Intent:         entry.Intent,
		Period:         entry.Period,
		BypassUsed:     entry.BypassUsed,
		CreatedAt:      entry.CreatedAt,
	}
	if _, _, err := s.client.Collection(colUsageLogs).Add(ctx, doc); err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

// CountUsageSince counts usage rows for the user created at or after since.
func (s *FirestoreStore) CountUsageSince(ctx context.Context, userID string, since time.Time) (int, error) {
	iter := s.client.Collection(colUsageLogs).
		Where("UserID", "==", userID).
		Where("CreatedAt", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count usage logs: %w", err)
		}
		count++
	}
	return count, nil
}
