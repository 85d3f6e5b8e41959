package assistant

import "strings"

// Intent is the coarse classification of what the user is asking for.
type Intent string

const (
	IntentSaveAdvice      Intent = "save_advice"
	IntentAnalyzeSpending Intent = "analyze_spending"
	IntentBiggestExpenses Intent = "biggest_expenses"
	IntentCompareMonths   Intent = "compare_months"
	IntentUnknown         Intent = "unknown"
)

// Period is the time range the user is asking about.
type Period string

const (
	PeriodThisWeek  Period = "thisWeek"
	PeriodLastWeek  Period = "lastWeek"
	PeriodThisMonth Period = "thisMonth"
	PeriodLastMonth Period = "lastMonth"
	PeriodUnknown   Period = "unknown"
)

// DetectIntent classifies a message by case-insensitive keyword substrings.
// First match wins; the table order encodes precedence.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, w := range entry.Words {
			if strings.Contains(lower, w) {
				return entry.Intent
			}
		}
	}
	return IntentUnknown
}

// DetectPeriod finds the requested time period the same way.
func DetectPeriod(message string) Period {
	lower := strings.ToLower(message)
	for _, entry := range periodKeywords {
		for _, w := range entry.Words {
			if strings.Contains(lower, w) {
				return entry.Period
			}
		}
	}
	return PeriodUnknown
}
