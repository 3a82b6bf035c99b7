package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	Owner         string           `json:"owner"`
	Type          transaction.Type `json:"type"`
	Category      string           `json:"category"`
	CategoryLabel string           `json:"category_label"`
	CategoryIcon  string           `json:"category_icon"`
	Subtitle      *string          `json:"subtitle,omitempty"`
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	Description   string           `json:"description"`
	Date          string           `json:"date"`
	ReceiptRef    *string          `json:"receipt_ref,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	entry := catalog.Resolve(tx.Category)

	return transactionResponse{
		ID:            tx.ID,
		Owner:         tx.Owner,
		Type:          tx.Type,
		Category:      tx.Category,
		CategoryLabel: entry.Label,
		CategoryIcon:  entry.Icon,
		Subtitle:      tx.Subtitle,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Description:   tx.Description,
		Date:          tx.Date.Format(time.DateOnly),
		ReceiptRef:    tx.ReceiptRef,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
