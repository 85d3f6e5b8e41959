package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ActionType tags the PendingAction union.
type ActionType string

const (
	ActionAddTransaction    ActionType = "add_transaction"
	ActionSaveRecurringRule ActionType = "save_recurring_rule"
)

// AddTransactionAction is a parsed but unexecuted add-transaction intent.
type AddTransactionAction struct {
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	BudgetFolderID *string         `json:"budget_folder_id,omitempty"`
	BudgetName     string          `json:"budget_name"`
}

// SaveRecurringRuleAction is a parsed but unexecuted save-recurring intent.
type SaveRecurringRuleAction struct {
	TitlePattern   string          `json:"title_pattern"`
	BudgetFolderID *string         `json:"budget_folder_id,omitempty"`
	AvgAmount      decimal.Decimal `json:"avg_amount"`
	Cadence        Cadence         `json:"cadence"`
	NextDueDate    string          `json:"next_due_date"`
}

// PendingAction is a tagged union. Exactly one payload matching Type is set;
// it lives only between the parse that created it and the explicit confirm or
// cancel that destroys it.
type PendingAction struct {
	Type              ActionType               `json:"type"`
	AddTransaction    *AddTransactionAction    `json:"add_transaction,omitempty"`
	SaveRecurringRule *SaveRecurringRuleAction `json:"save_recurring_rule,omitempty"`
}

// Validate checks the union discriminant against its payload.
func (a *PendingAction) Validate() error {
	switch a.Type {
	case ActionAddTransaction:
		if a.AddTransaction == nil {
			return fmt.Errorf("action type %s missing payload", a.Type)
		}
		if !a.AddTransaction.Amount.IsPositive() {
			return fmt.Errorf("add_transaction amount must be positive")
		}
	case ActionSaveRecurringRule:
		if a.SaveRecurringRule == nil {
			return fmt.Errorf("action type %s missing payload", a.Type)
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}
