package analytics

import (
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type PersonComparison struct {
	OwnerA   string  `json:"owner_a"`
	OwnerB   string  `json:"owner_b"`
	TotalA   float64 `json:"total_a"`
	TotalB   float64 `json:"total_b"`
	PercentA float64 `json:"percent_a"`
	PercentB float64 `json:"percent_b"`
	Skipped  int     `json:"skipped"`
}

// ComparePersons splits the month's expenses between the two owners.
// Expenses of any other owner are ignored. With nothing spent the split is
// an even 50/50.
func ComparePersons(txs []*transaction.Transaction, m Month, ownerA, ownerB string) PersonComparison {
	filtered, skipped := inMonth(txs, m)

	c := PersonComparison{OwnerA: ownerA, OwnerB: ownerB, Skipped: skipped}

	for _, tx := range filtered {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		switch tx.Owner {
		case ownerA:
			c.TotalA += tx.Amount
		case ownerB:
			c.TotalB += tx.Amount
		}
	}

	total := c.TotalA + c.TotalB
	if total == 0 {
		c.PercentA, c.PercentB = 50, 50
		return c
	}

	c.PercentA = c.TotalA / total * 100
	c.PercentB = c.TotalB / total * 100

	return c
}
