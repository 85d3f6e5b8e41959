package assistant

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

// Bucket names for expenses that cannot be attributed to a known budget.
const (
	bucketUnassigned = "Unassigned"
	bucketUnknown    = "Unknown"
)

// WeekRange returns [Monday 00:00 local, now).
func WeekRange(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))
	return monday, now
}

// LastWeekRange returns the seven days immediately preceding weekStart.
func LastWeekRange(weekStart time.Time) (time.Time, time.Time) {
	return weekStart.AddDate(0, 0, -7), weekStart
}

// MonthRange returns [first of the current month 00:00 local, now).
func MonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, now
}

// LastMonthRange returns the previous calendar month as a half-open range.
func LastMonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -1, 0), first
}

// FilterByDateRange keeps transactions with CreatedAt in [start, end).
func FilterByDateRange(txs []*model.Transaction, start, end time.Time) []*model.Transaction {
	var out []*model.Transaction
	for _, tx := range txs {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out
}

// SumExpenses totals expense amounts; zero for empty input.
func SumExpenses(txs []*model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == model.TransactionTypeExpense {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// BudgetTotals attributes every expense to exactly one bucket: its resolved
// budget name, "Unassigned" when it has no budget, or "Unknown" when the ID
// doesn't resolve. The values always sum to SumExpenses over the same input.
func BudgetTotals(txs []*model.Transaction, budgetNameByID map[string]string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != model.TransactionTypeExpense {
			continue
		}
		bucket := bucketUnassigned
		if tx.BudgetFolderID != nil {
			if name, ok := budgetNameByID[*tx.BudgetFolderID]; ok {
				bucket = name
			} else {
				bucket = bucketUnknown
			}
		}
		totals[bucket] = totals[bucket].Add(tx.Amount)
	}
	return totals
}

// TopExpenses returns the n largest expenses, stable-sorted descending so
// ties keep their original order.
func TopExpenses(txs []*model.Transaction, n int) []*model.Transaction {
	var expenses []*model.Transaction
	for _, tx := range txs {
		if tx.Type == model.TransactionTypeExpense {
			expenses = append(expenses, tx)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})
	if n < len(expenses) {
		expenses = expenses[:n]
	}
	return expenses
}

// MonthComparison is the month-over-month expense delta.
type MonthComparison struct {
	TotalThis decimal.Decimal
	TotalLast decimal.Decimal
	Diff      decimal.Decimal
}

// CompareMonthTotals computes expense totals for two pre-filtered month
// slices and their difference (this minus last).
func CompareMonthTotals(thisMonth, lastMonth []*model.Transaction) MonthComparison {
	totalThis := SumExpenses(thisMonth)
	totalLast := SumExpenses(lastMonth)
	return MonthComparison{
		TotalThis: totalThis,
		TotalLast: totalLast,
		Diff:      totalThis.Sub(totalLast),
	}
}
