package analytics

import (
	"cmp"
	"slices"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type PivotRow struct {
	Category     string  `json:"category"`
	Label        string  `json:"label"`
	Icon         string  `json:"icon"`
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	PctOfIncome  float64 `json:"pct_of_income"`
	PctOfExpense float64 `json:"pct_of_expense"`
}

type Pivot struct {
	Rows         []PivotRow `json:"rows"`
	TotalIncome  float64    `json:"total_income"`
	TotalExpense float64    `json:"total_expense"`
	Count        int        `json:"count"`
	Skipped      int        `json:"skipped"`
}

// CategoryPivot groups the month by category. A category may carry both
// income and expense; whichever types are present are summed. Rows are
// ordered by combined amount descending, then by code.
func CategoryPivot(txs []*transaction.Transaction, m Month) Pivot {
	filtered, skipped := inMonth(txs, m)

	groups := make(map[string]*PivotRow)

	var order []string

	p := Pivot{Count: len(filtered), Skipped: skipped}

	for _, tx := range filtered {
		row, ok := groups[tx.Category]
		if !ok {
			entry := catalog.Resolve(tx.Category)
			row = &PivotRow{Category: tx.Category, Label: entry.Label, Icon: entry.Icon}
			groups[tx.Category] = row
			order = append(order, tx.Category)
		}

		switch tx.Type {
		case transaction.TypeIncome:
			row.Income += tx.Amount
			p.TotalIncome += tx.Amount
		case transaction.TypeExpense:
			row.Expense += tx.Amount
			p.TotalExpense += tx.Amount
		}
	}

	p.Rows = make([]PivotRow, 0, len(order))

	for _, code := range order {
		row := *groups[code]
		row.PctOfIncome = percentOf(row.Income, p.TotalIncome)
		row.PctOfExpense = percentOf(row.Expense, p.TotalExpense)
		p.Rows = append(p.Rows, row)
	}

	slices.SortFunc(p.Rows, func(a, b PivotRow) int {
		if c := cmp.Compare(b.Income+b.Expense, a.Income+a.Expense); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return p
}

// percentOf is part/total*100, or 0 when total is 0.
func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return part / total * 100
}
