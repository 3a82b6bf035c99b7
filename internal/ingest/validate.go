package ingest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var (
	ErrInvalidAmount    = errors.New("amount must be a number greater than zero")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidDate      = errors.New("date is not a valid calendar date")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrUnknownCategory  = errors.New("category is not in the catalog for this type")
	ErrUnknownOwner     = errors.New("owner is not one of the workspace owners")
	ErrNoValidRows      = errors.New("batch has no valid rows, at least one is required")
)

// DraftRow is one user-entered line of a bulk batch, exactly as typed.
type DraftRow struct {
	Owner       string `json:"owner"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Subtitle    string `json:"subtitle"`
	Currency    string `json:"currency"`
	ReceiptRef  string `json:"receipt_ref"`
}

// Rejection explains why a row was left out. Row is 1-based.
type Rejection struct {
	Row int
	Err error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("row %d: %v", r.Row, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

type Result struct {
	Accepted      []transaction.CreateParams
	Rejected      []Rejection
	RejectedCount int
	FirstError    string
}

// ValidateBatch checks every row independently. Valid rows are normalized
// into create params in input order; the rest are counted as rejected.
// When owners is non-empty, a row naming any other owner is rejected.
func ValidateBatch(rows []DraftRow, owners ...string) Result {
	var res Result

	for i, row := range rows {
		params, err := normalize(row, owners)
		if err != nil {
			rej := Rejection{Row: i + 1, Err: err}
			res.Rejected = append(res.Rejected, rej)

			if res.FirstError == "" {
				res.FirstError = rej.Error()
			}

			continue
		}

		res.Accepted = append(res.Accepted, params)
	}

	res.RejectedCount = len(res.Rejected)

	return res
}

func normalize(row DraftRow, owners []string) (transaction.CreateParams, error) {
	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	desc := strings.TrimSpace(row.Description)
	if desc == "" {
		return transaction.CreateParams{}, ErrEmptyDescription
	}

	date, err := ParseDate(row.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	txType := transaction.Type(strings.ToLower(strings.TrimSpace(row.Type)))
	if !txType.Valid() {
		return transaction.CreateParams{}, ErrInvalidType
	}

	category := strings.TrimSpace(row.Category)
	if !catalog.Has(txType, category) {
		return transaction.CreateParams{}, ErrUnknownCategory
	}

	owner := strings.TrimSpace(row.Owner)
	if len(owners) > 0 && owner != "" && !slices.Contains(owners, owner) {
		return transaction.CreateParams{}, ErrUnknownOwner
	}

	params := transaction.CreateParams{
		Owner:       owner,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Currency:    strings.ToUpper(strings.TrimSpace(row.Currency)),
		Description: desc,
		Date:        date,
	}

	if s := strings.TrimSpace(row.Subtitle); s != "" {
		params.Subtitle = &s
	}

	if r := strings.TrimSpace(row.ReceiptRef); r != "" {
		params.ReceiptRef = &r
	}

	return params, nil
}
