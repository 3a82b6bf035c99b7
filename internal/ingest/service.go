package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// BatchCreator writes a whole batch with one call and reports how many
// rows were stored.
type BatchCreator interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) (*transaction.BatchResult, error)
}

// BatchError is returned when no row of a batch validates.
type BatchError struct {
	Accepted   int
	Rejected   int
	FirstError string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%v (accepted %d, rejected %d): %s", ErrNoValidRows, e.Accepted, e.Rejected, e.FirstError)
}

func (e *BatchError) Is(target error) bool {
	return target == ErrNoValidRows
}

// Outcome reports a submitted batch. Inserted is the store's own count.
type Outcome struct {
	Inserted     int
	Rejected     []Rejection
	Transactions []*transaction.Transaction
}

type Service struct {
	store    BatchCreator
	currency string
	owners   []string
}

// NewService builds an ingest service. Rows naming an owner outside owners
// are rejected; with no owners every name is accepted.
func NewService(store BatchCreator, defaultCurrency string, owners ...string) *Service {
	return &Service{store: store, currency: defaultCurrency, owners: owners}
}

// Submit validates rows and writes the accepted ones in a single bulk call.
// Rows without an owner are attributed to owner.
func (s *Service) Submit(ctx context.Context, owner string, rows []DraftRow) (*Outcome, error) {
	filled := make([]DraftRow, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Owner) == "" {
			row.Owner = owner
		}

		filled[i] = row
	}

	res := ValidateBatch(filled, s.owners...)
	if len(res.Accepted) == 0 {
		return nil, &BatchError{Rejected: res.RejectedCount, FirstError: res.FirstError}
	}

	for i := range res.Accepted {
		if res.Accepted[i].Currency == "" {
			res.Accepted[i].Currency = s.currency
		}
	}

	batch, err := s.store.CreateBatch(ctx, res.Accepted)
	if err != nil {
		return nil, fmt.Errorf("bulk create: %w", err)
	}

	return &Outcome{
		Inserted:     batch.Count,
		Rejected:     res.Rejected,
		Transactions: batch.Transactions,
	}, nil
}
