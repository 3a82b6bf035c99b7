package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a transaction (income or expense).
// Amounts are never signed; the direction lives here.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single dated money movement recorded by one of the
// workspace owners.
type Transaction struct {
	ID       uuid.UUID
	Owner    string
	Type     Type
	Category string
	// Subtitle clusters transactions under a named event in the recap view.
	// Nil means ungrouped, which is distinct from a pointer to "".
	Subtitle    *string
	Amount      float64
	Currency    string
	Description string
	Date        time.Time
	ReceiptRef  *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
