package transaction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidType   = errors.New("type must be income or expense")
	ErrInvalidAmount = errors.New("amount must be a finite non-negative number")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// CreateTransactions inserts all rows in a single unit of work and
	// returns how many rows the store actually accepted.
	CreateTransactions(ctx context.Context, txs []*Transaction) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Owner       string
	Type        Type
	Category    string
	Subtitle    *string
	Amount      float64
	Currency    string
	Description string
	Date        time.Time
	ReceiptRef  *string
}

// Validate checks the invariants every stored transaction must hold.
// Category membership is checked by callers against the catalog.
func (p CreateParams) Validate() error {
	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Amount < 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return ErrInvalidAmount
	}

	return nil
}

type ListFilter struct {
	Owner     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// BatchResult reports the outcome of a bulk create. Count is the number of
// rows the store reported as inserted.
type BatchResult struct {
	Count        int
	Transactions []*Transaction
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx := toTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if err := toParams(tx).Validate(); err != nil {
		return err
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// CreateBatch writes all params with one repository call. Nothing is written
// when any param fails validation.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) (*BatchResult, error) {
	if len(params) == 0 {
		return &BatchResult{}, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}

		txs[i] = toTransaction(p)
	}

	count, err := s.repo.CreateTransactions(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return &BatchResult{Count: count, Transactions: txs}, nil
}

func toTransaction(p CreateParams) *Transaction {
	return &Transaction{
		Owner:       p.Owner,
		Type:        p.Type,
		Category:    p.Category,
		Subtitle:    p.Subtitle,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Description: p.Description,
		Date:        p.Date,
		ReceiptRef:  p.ReceiptRef,
	}
}

func toParams(tx *Transaction) CreateParams {
	return CreateParams{
		Owner:       tx.Owner,
		Type:        tx.Type,
		Category:    tx.Category,
		Subtitle:    tx.Subtitle,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Date:        tx.Date,
		ReceiptRef:  tx.ReceiptRef,
	}
}
