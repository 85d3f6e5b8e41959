package assistant

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var parseNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func TestParseLocally_SingleItem(t *testing.T) {
	result := ParseLocally("Coffee 4.50", parseNow)

	if result.RequiresAI {
		t.Fatal("simple input should not require the model")
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Title != "Coffee" {
		t.Errorf("title = %q, want Coffee", item.Title)
	}
	if !item.Amount.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("amount = %s, want 4.50", item.Amount)
	}
	if item.CategoryName != "Food" {
		t.Errorf("category = %q, want Food", item.CategoryName)
	}
	if item.Date != "2025-03-12" {
		t.Errorf("date = %q, want 2025-03-12", item.Date)
	}
}

func TestParseLocally_MultiItemWithTrailingDate(t *testing.T) {
	result := ParseLocally("такси 300 и кофе 150 вчера", parseNow)

	if result.RequiresAI {
		t.Fatal("multi-item input should not require the model")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	taxi, coffee := result.Items[0], result.Items[1]
	if taxi.Title != "Такси" || coffee.Title != "Кофе" {
		t.Errorf("titles = %q, %q", taxi.Title, coffee.Title)
	}
	if taxi.CategoryName != "Transport" {
		t.Errorf("taxi category = %q, want Transport", taxi.CategoryName)
	}
	if coffee.CategoryName != "Food" {
		t.Errorf("coffee category = %q, want Food", coffee.CategoryName)
	}
	// The trailing date word applies to every segment.
	for _, item := range result.Items {
		if item.Date != "2025-03-11" {
			t.Errorf("%s date = %q, want 2025-03-11", item.Title, item.Date)
		}
	}
}

func TestParseLocally_RejectsNarration(t *testing.T) {
	inputs := []string{
		"I bought coffee for 5",
		"spent 20 on lunch",
		"потратил 500 на продукты",
		"dinner 30 last monday",
		"groceries 45 a week ago",
	}
	for _, input := range inputs {
		result := ParseLocally(input, parseNow)
		if !result.RequiresAI {
			t.Errorf("%q: expected RequiresAI", input)
		}
		if len(result.Items) != 0 {
			t.Errorf("%q: expected no items, got %d", input, len(result.Items))
		}
	}
}

func TestParseLocally_PartialParse(t *testing.T) {
	result := ParseLocally("coffee 5, something weird", parseNow)

	if !result.RequiresAI {
		t.Fatal("unparsed segment should set RequiresAI")
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 parsed item, got %d", len(result.Items))
	}
	if len(result.UnparsedSegments) != 1 {
		t.Fatalf("expected 1 unparsed segment, got %d", len(result.UnparsedSegments))
	}
}

func TestParseLocally_Empty(t *testing.T) {
	result := ParseLocally("   ", parseNow)
	if !result.RequiresAI {
		t.Error("blank input should require the model")
	}
}

func TestParseLocally_Deterministic(t *testing.T) {
	first := ParseLocally("kopi 25000 kemarin", parseNow)
	second := ParseLocally("kopi 25000 kemarin", parseNow)

	if len(first.Items) != 1 || len(second.Items) != 1 {
		t.Fatalf("expected 1 item in both runs, got %d and %d", len(first.Items), len(second.Items))
	}
	a, b := first.Items[0], second.Items[0]
	if a.Title != b.Title || !a.Amount.Equal(b.Amount) || a.CategoryName != b.CategoryName || a.Date != b.Date {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
	if first.Items[0].Date != "2025-03-11" {
		t.Errorf("kemarin date = %q, want 2025-03-11", first.Items[0].Date)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		tok  string
		want string
		ok   bool
	}{
		{"4.50", "4.50", true},
		{"12,50", "12.50", true},
		{"12,5", "12.5", true},
		{"1,234.56", "1234.56", true},
		{"1.234,56", "1234.56", true},
		{"1,234", "1234", true},
		{"$45", "45", true},
		{"300₽", "300", true},
		{"Rp25000", "25000", true},
		{"0", "", false},
		{"-5", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.tok)
		if ok != tt.ok {
			t.Errorf("parseAmount(%q) ok = %v, want %v", tt.tok, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("parseAmount(%q) = %s, want %s", tt.tok, got, tt.want)
		}
	}
}

func TestParseSegment_RejectsTwoAmounts(t *testing.T) {
	if _, ok := parseSegment("coffee 5 10"); ok {
		t.Error("segment with two numeric tokens should not parse")
	}
}

func TestCategorizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Uber to airport", "Transport"},
		{"Netflix", "Entertainment"},
		{"Sepatu baru", "Shopping"},
		{"Random thing", "Other"},
	}
	for _, tt := range tests {
		if got := categorizeTitle(tt.title); got != tt.want {
			t.Errorf("categorizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
