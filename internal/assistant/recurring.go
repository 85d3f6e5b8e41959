package assistant

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

const (
	recurringMinOccurrences = 3
	recurringMaxCandidates  = 20

	weeklyGapMin, weeklyGapMax   = 5, 9
	monthlyGapMin, monthlyGapMax = 25, 35

	recurringWindowMinDays = 90
	recurringWindowMaxDays = 180
)

// trailingIDPattern strips order/invoice numbers like "#1234" or "00482"
// from the end of a title.
var trailingIDPattern = regexp.MustCompile(`#?\d{3,}$`)

// FindRecurringCandidates scans expense history for weekly or monthly
// patterns. windowDays is clamped to [90, 180]; groups need at least three
// occurrences and a median inter-arrival gap inside one of the cadence
// windows. Amounts use the median, not the mean, so a single outlier charge
// doesn't skew the estimate.
func FindRecurringCandidates(txs []*model.Transaction, windowDays int, now time.Time) []*model.RecurringCandidate {
	if windowDays < recurringWindowMinDays {
		windowDays = recurringWindowMinDays
	}
	if windowDays > recurringWindowMaxDays {
		windowDays = recurringWindowMaxDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	groups := make(map[string][]*model.Transaction)
	for _, tx := range txs {
		if tx.Type != model.TransactionTypeExpense || tx.CreatedAt.Before(cutoff) {
			continue
		}
		key := normalizeTitlePattern(tx.Title)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	var candidates []*model.RecurringCandidate
	for pattern, group := range groups {
		if len(group) < recurringMinOccurrences {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})

		gaps := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			gaps = append(gaps, group[i].CreatedAt.Sub(group[i-1].CreatedAt).Hours()/24)
		}
		medianGap := medianFloat(gaps)

		var cadence model.Cadence
		var forecastDays int
		switch {
		case medianGap >= weeklyGapMin && medianGap <= weeklyGapMax:
			cadence, forecastDays = model.CadenceWeekly, 7
		case medianGap >= monthlyGapMin && medianGap <= monthlyGapMax:
			cadence, forecastDays = model.CadenceMonthly, 30
		default:
			continue
		}

		last := group[len(group)-1]
		candidates = append(candidates, &model.RecurringCandidate{
			TitlePattern:   pattern,
			BudgetFolderID: modalBudgetID(group),
			AvgAmount:      medianAmount(group),
			Cadence:        cadence,
			NextDueDate:    last.CreatedAt.AddDate(0, 0, forecastDays).Format("2006-01-02"),
			Count:          len(group),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AvgAmount.GreaterThan(candidates[j].AvgAmount)
	})
	if len(candidates) > recurringMaxCandidates {
		candidates = candidates[:recurringMaxCandidates]
	}
	return candidates
}

// normalizeTitlePattern lowercases, drops emoji and punctuation, strips a
// trailing numeric ID and collapses whitespace.
func normalizeTitlePattern(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '#' {
			b.WriteRune(r)
		}
	}
	s := whitespaceRun.ReplaceAllString(strings.TrimSpace(b.String()), " ")
	s = strings.TrimSpace(trailingIDPattern.ReplaceAllString(s, ""))
	return s
}

func medianFloat(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func medianAmount(group []*model.Transaction) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(group))
	for i, tx := range group {
		amounts[i] = tx.Amount
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
	mid := len(amounts) / 2
	if len(amounts)%2 == 0 {
		return amounts[mid-1].Add(amounts[mid]).Div(decimal.NewFromInt(2))
	}
	return amounts[mid]
}

// modalBudgetID picks the most frequent budget ID in the group, first
// encountered winning ties. Nil when no transaction carries a budget.
func modalBudgetID(group []*model.Transaction) *string {
	counts := make(map[string]int)
	var order []string
	for _, tx := range group {
		if tx.BudgetFolderID == nil {
			continue
		}
		id := *tx.BudgetFolderID
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	var best *string
	bestCount := 0
	for _, id := range order {
		if counts[id] > bestCount {
			bestCount = counts[id]
			idCopy := id
			best = &idCopy
		}
	}
	return best
}
