package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type fakeTxs struct {
	txs []*transaction.Transaction
	err error
}

func (f fakeTxs) List(_ context.Context, _ transaction.ListFilter) ([]*transaction.Transaction, error) {
	return f.txs, f.err
}

type fakeBudgets struct {
	budgets []*budget.Budget
	err     error
}

func (f fakeBudgets) List(_ context.Context) ([]*budget.Budget, error) {
	return f.budgets, f.err
}

func TestService_Dashboard(t *testing.T) {
	svc := analytics.NewService(
		fakeTxs{txs: marchScenario()},
		fakeBudgets{budgets: []*budget.Budget{monthly("food", 100000)}},
		analytics.Options{OwnerA: "ayu", OwnerB: "bima"},
	)

	d, err := svc.Dashboard(context.Background(), analytics.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)

	assert.Equal(t, "2026-03", d.Month)
	assert.Equal(t, "Mar 2026", d.MonthLabel)
	assert.Equal(t, 430000.0, d.Totals.Balance)
	assert.Len(t, d.Ledger.Rows, 3)
	assert.Len(t, d.Pivot.Rows, 3)
	require.Len(t, d.Budgets.Rows, 1)
	assert.InDelta(t, 50.0, d.Budgets.Rows[0].PercentUsed, 1e-9)
	assert.Len(t, d.Trend, analytics.DefaultTrendWindow)
	assert.Equal(t, 50000.0, d.Comparison.TotalA)
	assert.Equal(t, 20000.0, d.Comparison.TotalB)
	require.Len(t, d.Recap.Groups, 1)
	assert.False(t, d.Recap.Groups[0].Grouped)
}

func TestService_SnapshotErrors(t *testing.T) {
	boom := errors.New("boom")

	svc := analytics.NewService(fakeTxs{err: boom}, fakeBudgets{}, analytics.Options{})
	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, boom)

	svc = analytics.NewService(fakeTxs{}, fakeBudgets{err: boom}, analytics.Options{})
	_, err = svc.Dashboard(context.Background(), analytics.Month{Year: 2026, Month: time.March})
	assert.ErrorIs(t, err, boom)
}

func TestNewService_DefaultsTrendWindow(t *testing.T) {
	svc := analytics.NewService(fakeTxs{}, fakeBudgets{}, analytics.Options{TrendWindow: -3})
	assert.Equal(t, analytics.DefaultTrendWindow, svc.Options().TrendWindow)
}
