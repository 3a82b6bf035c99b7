package analytics

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type LedgerRow struct {
	TransactionID  uuid.UUID `json:"transaction_id"`
	Date           time.Time `json:"date"`
	Owner          string    `json:"owner"`
	Label          string    `json:"label"`
	Category       string    `json:"category"`
	CategoryTag    string    `json:"category_tag"`
	In             float64   `json:"in"`
	Out            float64   `json:"out"`
	RunningBalance float64   `json:"running_balance"`
}

type Ledger struct {
	Rows         []LedgerRow `json:"rows"`
	TotalIn      float64     `json:"total_in"`
	TotalOut     float64     `json:"total_out"`
	FinalBalance float64     `json:"final_balance"`
	Skipped      int         `json:"skipped"`
}

// BuildLedger lists the month in date order with a running balance. Rows on
// the same day keep their input order. Each row's balance includes itself.
func BuildLedger(txs []*transaction.Transaction, m Month) Ledger {
	filtered, skipped := inMonth(txs, m)

	slices.SortStableFunc(filtered, func(a, b *transaction.Transaction) int {
		return cmp.Compare(civilDay(a.Date), civilDay(b.Date))
	})

	l := Ledger{
		Rows:    make([]LedgerRow, 0, len(filtered)),
		Skipped: skipped,
	}

	balance := 0.0

	for _, tx := range filtered {
		row := ledgerRow(tx)

		balance += row.In - row.Out
		row.RunningBalance = balance

		l.TotalIn += row.In
		l.TotalOut += row.Out
		l.Rows = append(l.Rows, row)
	}

	l.FinalBalance = balance

	return l
}

func ledgerRow(tx *transaction.Transaction) LedgerRow {
	entry := catalog.Resolve(tx.Category)

	row := LedgerRow{
		TransactionID: tx.ID,
		Date:          tx.Date,
		Owner:         tx.Owner,
		Label:         label(tx, entry),
		Category:      tx.Category,
		CategoryTag:   entry.Label,
	}

	if tx.Type == transaction.TypeIncome {
		row.In = tx.Amount
	} else {
		row.Out = tx.Amount
	}

	return row
}

func civilDay(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func label(tx *transaction.Transaction, entry catalog.Entry) string {
	if d := strings.TrimSpace(tx.Description); d != "" {
		return d
	}

	return entry.Label
}
