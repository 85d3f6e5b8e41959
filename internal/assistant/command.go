package assistant

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

const maxTitleLen = 60

// addCommandPattern recognizes "add [title] [$]12.50 to/into <name> budget".
// English-oriented on purpose: other locales fall through to the model path,
// which handles them conversationally.
var addCommandPattern = regexp.MustCompile(
	`(?i)^\s*(?:add\s+)?(.*?)\s*[$€£₽]?\s*([\d][\d.,]*)\s+(?:to|into)\s+(.+?)\s+budget\b`)

// ParsedAdd is a recognized add-transaction command. BudgetFolderID is nil
// when the budget name didn't resolve; the orchestrator reports "not found"
// rather than guessing.
type ParsedAdd struct {
	Title          string
	Amount         decimal.Decimal
	BudgetName     string
	BudgetFolderID *string
}

// ParseAddCommand extracts an explicit add-transaction command, or nil when
// the text doesn't match or no positive amount can be read.
func ParseAddCommand(text string, budgets []*model.Budget) *ParsedAdd {
	m := addCommandPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	amount, ok := parseAmount(m[2])
	if !ok {
		return nil
	}

	title := sanitizeFreeText(m[1], maxTitleLen)
	if title == "" {
		title = "Expense"
	} else {
		title = capitalizeTitle(title)
	}

	rawName := sanitizeFreeText(m[3], maxTitleLen)
	parsed := &ParsedAdd{
		Title:      title,
		Amount:     amount,
		BudgetName: rawName,
	}

	normalized := normalizeName(rawName)
	for _, b := range budgets {
		if normalizeName(b.Name) == normalized {
			id := b.ID
			parsed.BudgetFolderID = &id
			parsed.BudgetName = b.Name
			break
		}
	}
	return parsed
}

// LooksLikeAddAttempt reports whether a message that failed command parsing
// was probably meant as one: a localized add-verb stem, or a budget word next
// to a number or currency symbol. Used to answer with a deterministic format
// hint instead of spending a model call.
func LooksLikeAddAttempt(text string) bool {
	lower := strings.ToLower(text)
	for _, stem := range addVerbStems {
		if strings.Contains(lower, stem) {
			return true
		}
	}
	hasBudgetWord := false
	for _, w := range budgetWords {
		if strings.Contains(lower, w) {
			hasBudgetWord = true
			break
		}
	}
	if !hasBudgetWord {
		return false
	}
	if strings.ContainsAny(lower, "0123456789") {
		return true
	}
	return strings.ContainsAny(lower, currencyRunes)
}

// ParseSaveRecurringCommand recognizes a confirm-save-as-recurring phrase
// and picks the candidate whose normalized title appears in the message,
// falling back to the first candidate.
func ParseSaveRecurringCommand(message string, candidates []*model.RecurringCandidate) *model.RecurringCandidate {
	if len(candidates) == 0 {
		return nil
	}
	lower := strings.ToLower(message)
	if !hasSaveRecurringTrigger(lower) {
		return nil
	}

	for _, c := range candidates {
		if c.TitlePattern != "" && strings.Contains(lower, c.TitlePattern) {
			return c
		}
	}
	return candidates[0]
}

func hasSaveRecurringTrigger(lower string) bool {
	for _, trigger := range saveRecurringTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
