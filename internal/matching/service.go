package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Pattern     string
	Description string
	Category    string
}

// Create stores a new rule. Later rules win over older ones with a pattern
// of the same length.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Rule, error) {
	r := &Rule{
		Pattern:     strings.TrimSpace(params.Pattern),
		Description: strings.TrimSpace(params.Description),
		Category:    strings.TrimSpace(params.Category),
	}

	if r.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	if r.Description == "" && r.Category == "" {
		return nil, ErrEmptyRule
	}

	if r.Category != "" {
		if _, ok := catalog.Lookup(r.Category); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
		}
	}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, id)
}

// Load reads every rule into a Set ready to apply to an import.
func (s *Service) Load(ctx context.Context) (*Set, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	return NewSet(rules), nil
}
