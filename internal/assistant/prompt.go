package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

// PromptVersion identifies the prompt layout in response headers and usage
// analysis, so answer-quality changes can be correlated with prompt changes.
const PromptVersion = "v3"

// Prompt layout limits.
const (
	promptMaxBudgets      = 15
	promptMaxBudgetTotals = 10
	promptMaxTransactions = 50
	promptTopExpenses     = 3
)

// DefaultInstructions is the fixed directive block at the top of every
// prompt. Providers are told explicitly to answer in plain conversational
// text: the reply renders in a chat surface, not a document view.
const DefaultInstructions = `You are a personal finance assistant. Answer the user's question using
only the figures provided below. Be concise and concrete; mention amounts
with their currency. Reply in the language of the user's message.
Answer in plain conversational text only: no JSON, no markdown tables,
no code fences, no bullet lists.`

// PromptSection is one pre-aggregated reporting window (week or month).
type PromptSection struct {
	Label        string
	Start, End   time.Time
	Total        decimal.Decimal
	BudgetTotals map[string]decimal.Decimal
	Transactions []*model.Transaction
	TopExpenses  []*model.Transaction
	NameByID     map[string]string
}

// NewPromptSection aggregates a filtered transaction slice into a section.
func NewPromptSection(label string, start, end time.Time, txs []*model.Transaction, nameByID map[string]string) *PromptSection {
	return &PromptSection{
		Label:        label,
		Start:        start,
		End:          end,
		Total:        SumExpenses(txs),
		BudgetTotals: BudgetTotals(txs, nameByID),
		Transactions: txs,
		TopExpenses:  TopExpenses(txs, promptTopExpenses),
		NameByID:     nameByID,
	}
}

// BuildPrompt assembles the full prompt document. When the full variant
// would exceed maxChars it falls back to a compact variant that keeps the
// aggregates and drops the raw transaction listing, so the result never
// exceeds the budget.
func BuildPrompt(budgets []*model.Budget, instructions string, weekly, monthly *PromptSection, userMessage string, maxChars int) string {
	full := renderPrompt(budgets, instructions, weekly, monthly, userMessage, true)
	if maxChars <= 0 || len(full) <= maxChars {
		return full
	}
	compact := renderPrompt(budgets, instructions, weekly, monthly, userMessage, false)
	if len(compact) <= maxChars {
		return compact
	}
	// Last resort for degenerate budgets: hard truncation keeps the
	// invariant over completeness.
	return compact[:maxChars]
}

func renderPrompt(budgets []*model.Budget, instructions string, weekly, monthly *PromptSection, userMessage string, full bool) string {
	var b strings.Builder

	b.WriteString(instructions)
	b.WriteString("\n\n")

	b.WriteString("Known budgets:\n")
	for i, budget := range budgets {
		if i >= promptMaxBudgets {
			break
		}
		fmt.Fprintf(&b, "- %s (%s)\n", sanitizeFreeText(budget.Name, maxTitleLen), budget.Type)
	}
	if len(budgets) == 0 {
		b.WriteString("- none\n")
	}

	for _, section := range []*PromptSection{weekly, monthly} {
		if section == nil {
			continue
		}
		b.WriteString("\n")
		renderSection(&b, section, full)
	}

	b.WriteString("\nUser message:\n")
	b.WriteString(sanitizeFreeText(userMessage, 0))
	b.WriteString("\n")
	return b.String()
}

func renderSection(b *strings.Builder, s *PromptSection, full bool) {
	fmt.Fprintf(b, "%s (%s to %s):\n", s.Label,
		s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))
	fmt.Fprintf(b, "Total expenses: %s\n", s.Total.StringFixed(2))

	if len(s.BudgetTotals) > 0 {
		b.WriteString("By budget:\n")
		for _, kv := range sortedTotals(s.BudgetTotals, promptMaxBudgetTotals) {
			fmt.Fprintf(b, "- %s: %s\n", kv.name, kv.total.StringFixed(2))
		}
	}

	if full && len(s.Transactions) > 0 {
		b.WriteString("Transactions:\n")
		for i, tx := range s.Transactions {
			if i >= promptMaxTransactions {
				break
			}
			fmt.Fprintf(b, "%s | %s | %s | %s | %s\n",
				tx.CreatedAt.Format("2006-01-02"),
				tx.Type,
				tx.Amount.StringFixed(2),
				budgetLabel(tx, s.NameByID),
				sanitizeFreeText(tx.Title, maxTitleLen))
		}
	}

	if len(s.TopExpenses) > 0 {
		b.WriteString("Top expenses:\n")
		for _, tx := range s.TopExpenses {
			fmt.Fprintf(b, "- %s: %s\n",
				sanitizeFreeText(tx.Title, maxTitleLen), tx.Amount.StringFixed(2))
		}
	}
}

func budgetLabel(tx *model.Transaction, nameByID map[string]string) string {
	if tx.BudgetFolderID == nil {
		return bucketUnassigned
	}
	if name, ok := nameByID[*tx.BudgetFolderID]; ok {
		return sanitizeFreeText(name, maxTitleLen)
	}
	return bucketUnknown
}

type totalEntry struct {
	name  string
	total decimal.Decimal
}

// sortedTotals orders budget totals descending, name ascending on ties, and
// caps the list.
func sortedTotals(totals map[string]decimal.Decimal, limit int) []totalEntry {
	entries := make([]totalEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, totalEntry{name: sanitizeFreeText(name, maxTitleLen), total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].total.Equal(entries[j].total) {
			return entries[i].total.GreaterThan(entries[j].total)
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
