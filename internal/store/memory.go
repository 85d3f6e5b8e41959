package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spendora/assistant/internal/model"
)

// MemoryStore implements Store with in-memory maps for local development and
// tests.
type MemoryStore struct {
	mu sync.RWMutex

	budgets        map[string]*model.Budget
	transactions   map[string]*model.Transaction
	recurringRules map[string]*model.RecurringRule // keyed userID:titlePattern
	usageLogs      []*model.UsageLogEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		budgets:        make(map[string]*model.Budget),
		transactions:   make(map[string]*model.Transaction),
		recurringRules: make(map[string]*model.RecurringRule),
	}
}

// SeedBudget inserts a budget directly, for local dev and tests.
func (s *MemoryStore) SeedBudget(b *model.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.ID] = b
}

// SeedTransaction inserts a transaction directly, for local dev and tests.
func (s *MemoryStore) SeedTransaction(tx *model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[tx.ID] = tx
}

func (s *MemoryStore) ListBudgets(_ context.Context, userID string) ([]*model.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var budgets []*model.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Name < budgets[j].Name })
	return budgets, nil
}

func (s *MemoryStore) ListRecentTransactions(_ context.Context, userID string, limit int) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	var txs []*model.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt.After(txs[j].CreatedAt) })
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (s *MemoryStore) CreateTransaction(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if _, exists := s.transactions[tx.ID]; exists {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *MemoryStore) UpsertRecurringRule(_ context.Context, rule *model.RecurringRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurringRules[rule.UserID+":"+rule.TitlePattern] = rule
	return nil
}

func (s *MemoryStore) ListRecurringRules(_ context.Context, userID string) ([]*model.RecurringRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rules []*model.RecurringRule
	for _, r := range s.recurringRules {
		if r.UserID == userID {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].TitlePattern < rules[j].TitlePattern })
	return rules, nil
}

func (s *MemoryStore) AppendUsageLog(_ context.Context, entry *model.UsageLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usageLogs = append(s.usageLogs, entry)
	return nil
}

func (s *MemoryStore) CountUsageSince(_ context.Context, userID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.usageLogs {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// UsageLogs returns a copy of the appended entries, for tests asserting the
// one-row-per-request invariant.
func (s *MemoryStore) UsageLogs() []*model.UsageLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.UsageLogEntry(nil), s.usageLogs...)
}
