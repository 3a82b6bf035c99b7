package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type BudgetLister interface {
	List(ctx context.Context) ([]*budget.Budget, error)
}

// Snapshot is everything the workspace knows at one point in time. Every
// report is derived from a snapshot from scratch.
type Snapshot struct {
	Transactions []*transaction.Transaction
	Budgets      []*budget.Budget
}

// Options configures the derived reports.
type Options struct {
	OwnerA      string
	OwnerB      string
	TrendWindow int
}

type Dashboard struct {
	Month      string           `json:"month"`
	MonthLabel string           `json:"month_label"`
	Totals     MonthlyTotals    `json:"totals"`
	Pivot      Pivot            `json:"pivot"`
	Budgets    BudgetReport     `json:"budgets"`
	Ledger     Ledger           `json:"ledger"`
	Trend      []TrendPoint     `json:"trend"`
	Comparison PersonComparison `json:"comparison"`
	Recap      RecapReport      `json:"recap"`
}

type Service struct {
	txs     TransactionLister
	budgets BudgetLister
	opts    Options
}

func NewService(txs TransactionLister, budgets BudgetLister, opts Options) *Service {
	if opts.TrendWindow <= 0 {
		opts.TrendWindow = DefaultTrendWindow
	}

	return &Service{txs: txs, budgets: budgets, opts: opts}
}

func (s *Service) Options() Options {
	return s.opts
}

// Snapshot fetches transactions and budgets concurrently.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := s.txs.List(ctx, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}

		snap.Transactions = txs

		return nil
	})

	g.Go(func() error {
		budgets, err := s.budgets.List(ctx)
		if err != nil {
			return fmt.Errorf("listing budgets: %w", err)
		}

		snap.Budgets = budgets

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Dashboard fetches a fresh snapshot and derives every report for m.
func (s *Service) Dashboard(ctx context.Context, m Month) (*Dashboard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d := BuildDashboard(snap, m, s.opts)

	return &d, nil
}

// BuildDashboard derives every report for m from snap without I/O.
func BuildDashboard(snap *Snapshot, m Month, opts Options) Dashboard {
	return Dashboard{
		Month:      m.String(),
		MonthLabel: m.Label(),
		Totals:     Totals(snap.Transactions, m),
		Pivot:      CategoryPivot(snap.Transactions, m),
		Budgets:    Utilization(snap.Transactions, snap.Budgets, m),
		Ledger:     BuildLedger(snap.Transactions, m),
		Trend:      Trend(snap.Transactions, m, opts.TrendWindow),
		Comparison: ComparePersons(snap.Transactions, m, opts.OwnerA, opts.OwnerB),
		Recap:      RecapMonth(snap.Transactions, m),
	}
}
