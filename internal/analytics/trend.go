package analytics

import (
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const DefaultTrendWindow = 6

type TrendPoint struct {
	Month      Month   `json:"-"`
	MonthLabel string  `json:"month_label"`
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Savings    float64 `json:"savings"`
}

// Trend returns window consecutive months ending at anchor, oldest first.
// A non-positive window falls back to DefaultTrendWindow.
func Trend(txs []*transaction.Transaction, anchor Month, window int) []TrendPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}

	valid, _ := wellFormed(txs)

	points := make([]TrendPoint, window)
	m := anchor

	for i := window - 1; i >= 0; i-- {
		t := Totals(valid, m)
		points[i] = TrendPoint{
			Month:      m,
			MonthLabel: m.Label(),
			Income:     t.Income,
			Expense:    t.Expense,
			Savings:    t.Income - t.Expense,
		}
		m = m.Prev()
	}

	return points
}
