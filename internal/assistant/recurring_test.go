package assistant

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

func recurringTx(title, amount string, createdAt time.Time) *model.Transaction {
	return &model.Transaction{
		ID:        title + createdAt.Format("0102"),
		UserID:    "user-1",
		Title:     title,
		Amount:    decimal.RequireFromString(amount),
		Type:      model.TransactionTypeExpense,
		CreatedAt: createdAt,
	}
}

func TestFindRecurringCandidates_Weekly(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	var txs []*model.Transaction
	for i := 0; i < 4; i++ {
		txs = append(txs, recurringTx("Yoga class", "15", now.AddDate(0, 0, -7*(i+1))))
	}

	candidates := FindRecurringCandidates(txs, 120, now)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.TitlePattern != "yoga class" {
		t.Errorf("pattern = %q", c.TitlePattern)
	}
	if c.Cadence != model.CadenceWeekly {
		t.Errorf("cadence = %s, want weekly", c.Cadence)
	}
	if c.Count != 4 {
		t.Errorf("count = %d, want 4", c.Count)
	}
	// Next due is seven days after the most recent occurrence.
	if c.NextDueDate != now.AddDate(0, 0, -7+7).Format("2006-01-02") {
		t.Errorf("next due = %q", c.NextDueDate)
	}
}

func TestFindRecurringCandidates_MonthlyMedianAmount(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	// Three charges roughly 30 days apart, one with an outlier amount.
	txs := []*model.Transaction{
		recurringTx("Netflix #1001", "9.99", now.AddDate(0, 0, -90)),
		recurringTx("Netflix #1002", "9.99", now.AddDate(0, 0, -60)),
		recurringTx("Netflix #1003", "19.99", now.AddDate(0, 0, -30)),
	}

	candidates := FindRecurringCandidates(txs, 120, now)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.TitlePattern != "netflix" {
		t.Errorf("pattern = %q, trailing IDs should be stripped", c.TitlePattern)
	}
	if c.Cadence != model.CadenceMonthly {
		t.Errorf("cadence = %s, want monthly", c.Cadence)
	}
	if !c.AvgAmount.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("avg = %s, want the median 9.99", c.AvgAmount)
	}
}

func TestFindRecurringCandidates_TooFewOccurrences(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	txs := []*model.Transaction{
		recurringTx("Gym", "40", now.AddDate(0, 0, -60)),
		recurringTx("Gym", "40", now.AddDate(0, 0, -30)),
	}
	if got := FindRecurringCandidates(txs, 120, now); len(got) != 0 {
		t.Fatalf("two occurrences should not produce a candidate, got %d", len(got))
	}
}

func TestFindRecurringCandidates_GapOutsideWindows(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	// Ten-day gaps fall between the weekly and monthly windows.
	txs := []*model.Transaction{
		recurringTx("Car wash", "12", now.AddDate(0, 0, -40)),
		recurringTx("Car wash", "12", now.AddDate(0, 0, -30)),
		recurringTx("Car wash", "12", now.AddDate(0, 0, -20)),
		recurringTx("Car wash", "12", now.AddDate(0, 0, -10)),
	}
	if got := FindRecurringCandidates(txs, 120, now); len(got) != 0 {
		t.Fatalf("ten-day cadence should not match, got %d candidates", len(got))
	}
}

func TestFindRecurringCandidates_WindowClamp(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	// Occurrences older than 180 days must be ignored even with a huge
	// window request.
	var txs []*model.Transaction
	for i := 0; i < 4; i++ {
		txs = append(txs, recurringTx("Ancient", "99", now.AddDate(0, 0, -200-7*i)))
	}
	if got := FindRecurringCandidates(txs, 10000, now); len(got) != 0 {
		t.Fatalf("expected no candidates from outside the clamped window, got %d", len(got))
	}
}

func TestFindRecurringCandidates_SortedByAmount(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	var txs []*model.Transaction
	for i := 1; i <= 4; i++ {
		txs = append(txs,
			recurringTx("Cheap", "5", now.AddDate(0, 0, -7*i)),
			recurringTx("Pricey", "50", now.AddDate(0, 0, -7*i)),
		)
	}

	candidates := FindRecurringCandidates(txs, 120, now)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].TitlePattern != "pricey" {
		t.Errorf("largest median amount should sort first, got %q", candidates[0].TitlePattern)
	}
}

func TestNormalizeTitlePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Netflix #1234", "netflix"},
		{"☕ Coffee  Shop", "coffee shop"},
		{"Order 00482", "order"},
		{"Spotify", "spotify"},
	}
	for _, tt := range tests {
		if got := normalizeTitlePattern(tt.in); got != tt.want {
			t.Errorf("normalizeTitlePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModalBudgetID(t *testing.T) {
	b1, b2 := "b1", "b2"
	group := []*model.Transaction{
		{BudgetFolderID: &b1},
		{BudgetFolderID: &b2},
		{BudgetFolderID: &b2},
		{BudgetFolderID: nil},
	}
	got := modalBudgetID(group)
	if got == nil || *got != "b2" {
		t.Fatalf("modal = %v, want b2", got)
	}

	if modalBudgetID([]*model.Transaction{{BudgetFolderID: nil}}) != nil {
		t.Error("all-nil group should yield nil")
	}
}
