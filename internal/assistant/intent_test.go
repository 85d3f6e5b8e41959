package assistant

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"How can I save money?", IntentSaveAdvice},
		{"Как мне сэкономить?", IntentSaveAdvice},
		{"Analyze my spending please", IntentAnalyzeSpending},
		{"What were my biggest expenses?", IntentBiggestExpenses},
		{"Compare this month to last", IntentCompareMonths},
		{"Did I spend more than last month?", IntentCompareMonths},
		{"berapa pengeluaran saya", IntentAnalyzeSpending},
		{"hello there", IntentUnknown},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.message); got != tt.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

func TestDetectPeriod(t *testing.T) {
	tests := []struct {
		message string
		want    Period
	}{
		{"how much did I spend this week", PeriodThisWeek},
		{"spending last week?", PeriodLastWeek},
		{"сколько я потратил на этой неделе", PeriodThisWeek},
		{"траты за прошлый месяц", PeriodLastMonth},
		{"pengeluaran bulan ini", PeriodThisMonth},
		{"show my expenses", PeriodUnknown},
	}
	for _, tt := range tests {
		if got := DetectPeriod(tt.message); got != tt.want {
			t.Errorf("DetectPeriod(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

func TestDetectPeriod_LastWeekBeforeThisWeek(t *testing.T) {
	// "past week" must not be shadowed by a "week" match further down.
	if got := DetectPeriod("spending over the past week"); got != PeriodLastWeek {
		t.Errorf("got %s, want %s", got, PeriodLastWeek)
	}
}
