package budget

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod = errors.New("period must be weekly, monthly or yearly")
	ErrInvalidAmount = errors.New("ceiling must be a finite non-negative number")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Owner    string
	Category string
	Amount   float64
	Period   Period
}

func validate(amount float64, period Period) error {
	if !period.Valid() {
		return ErrInvalidPeriod
	}

	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := validate(params.Amount, params.Period); err != nil {
		return nil, err
	}

	b := &Budget{
		Owner:    params.Owner,
		Category: params.Category,
		Amount:   params.Amount,
		Period:   params.Period,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	if err := validate(b.Amount, b.Period); err != nil {
		return err
	}

	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}
