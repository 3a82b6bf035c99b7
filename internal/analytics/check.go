package analytics

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// ValidationError describes a transaction the engine cannot aggregate.
// Aggregations skip such records and report how many were skipped.
type ValidationError struct {
	TransactionID uuid.UUID
	Reason        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transaction %s: %s", e.TransactionID, e.Reason)
}

// Check returns a *ValidationError when tx cannot take part in aggregation.
func Check(tx *transaction.Transaction) error {
	if tx == nil {
		return &ValidationError{Reason: "nil transaction"}
	}

	if !tx.Type.Valid() {
		return &ValidationError{TransactionID: tx.ID, Reason: fmt.Sprintf("unknown type %q", tx.Type)}
	}

	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return &ValidationError{TransactionID: tx.ID, Reason: "amount is not finite"}
	}

	if tx.Amount < 0 {
		return &ValidationError{TransactionID: tx.ID, Reason: "amount is negative"}
	}

	return nil
}

// wellFormed drops malformed records, keeping input order.
func wellFormed(txs []*transaction.Transaction) ([]*transaction.Transaction, int) {
	out := make([]*transaction.Transaction, 0, len(txs))
	skipped := 0

	for _, tx := range txs {
		if Check(tx) != nil {
			skipped++
			continue
		}

		out = append(out, tx)
	}

	return out, skipped
}

// inMonth returns the well-formed transactions dated in m. Skipped counts
// malformed records regardless of their date.
func inMonth(txs []*transaction.Transaction, m Month) ([]*transaction.Transaction, int) {
	valid, skipped := wellFormed(txs)

	out := make([]*transaction.Transaction, 0, len(valid))

	for _, tx := range valid {
		if m.Contains(tx.Date) {
			out = append(out, tx)
		}
	}

	return out, skipped
}
