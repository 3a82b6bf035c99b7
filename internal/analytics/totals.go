package analytics

import (
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type MonthlyTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
	Skipped int     `json:"skipped"`
}

// Totals sums income and expense for the month. An empty month is all zeros.
func Totals(txs []*transaction.Transaction, m Month) MonthlyTotals {
	filtered, skipped := inMonth(txs, m)

	t := sum(filtered)
	t.Skipped = skipped

	return t
}

func sum(txs []*transaction.Transaction) MonthlyTotals {
	var t MonthlyTotals

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income += tx.Amount
		case transaction.TypeExpense:
			t.Expense += tx.Amount
		}
	}

	t.Balance = t.Income - t.Expense

	return t
}
