package analytics

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// SpendScope says which transactions a utilization row counted.
type SpendScope string

const (
	ScopeMonth SpendScope = "month"
	// ScopeAllTime is used for weekly and yearly budgets, whose spend is
	// not bucketed into periods yet and counts every matching expense.
	ScopeAllTime SpendScope = "all_time"
)

type BudgetUtilization struct {
	BudgetID    uuid.UUID     `json:"budget_id"`
	Category    string        `json:"category"`
	Label       string        `json:"label"`
	Icon        string        `json:"icon"`
	Period      budget.Period `json:"period"`
	Scope       SpendScope    `json:"scope"`
	Ceiling     float64       `json:"ceiling"`
	Spent       float64       `json:"spent"`
	Remaining   float64       `json:"remaining"`
	PercentUsed float64       `json:"percent_used"`
	IsOver      bool          `json:"is_over"`
}

type BudgetReport struct {
	Rows           []BudgetUtilization `json:"rows"`
	TotalBudget    float64             `json:"total_budget"`
	TotalSpent     float64             `json:"total_spent"`
	TotalRemaining float64             `json:"total_remaining"`
	Skipped        int                 `json:"skipped"`
}

// Utilization produces one row per budget, duplicates included. Monthly
// budgets count expenses in m; other periods count all-time expenses.
func Utilization(txs []*transaction.Transaction, budgets []*budget.Budget, m Month) BudgetReport {
	valid, skipped := wellFormed(txs)

	report := BudgetReport{
		Rows:    make([]BudgetUtilization, 0, len(budgets)),
		Skipped: skipped,
	}

	for _, b := range budgets {
		if b == nil {
			report.Skipped++
			continue
		}

		scope := ScopeAllTime
		if b.Period == budget.PeriodMonthly {
			scope = ScopeMonth
		}

		spent := 0.0

		for _, tx := range valid {
			if tx.Type != transaction.TypeExpense || tx.Category != b.Category {
				continue
			}

			if scope == ScopeMonth && !m.Contains(tx.Date) {
				continue
			}

			spent += tx.Amount
		}

		entry := catalog.Resolve(b.Category)
		row := BudgetUtilization{
			BudgetID:    b.ID,
			Category:    b.Category,
			Label:       entry.Label,
			Icon:        entry.Icon,
			Period:      b.Period,
			Scope:       scope,
			Ceiling:     b.Amount,
			Spent:       spent,
			Remaining:   b.Amount - spent,
			PercentUsed: min(percentOf(spent, b.Amount), 100),
			IsOver:      spent > b.Amount,
		}

		report.Rows = append(report.Rows, row)
		report.TotalBudget += row.Ceiling
		report.TotalSpent += row.Spent
		report.TotalRemaining += row.Remaining
	}

	return report
}
