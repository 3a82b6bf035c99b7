package analytics_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	analyticshttp "github.com/MrJamesThe3rd/dompet/internal/http/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func tx(owner string, typ transaction.Type, category string, amount float64, month time.Month, day int) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Owner:    owner,
		Type:     typ,
		Category: category,
		Amount:   amount,
		Date:     time.Date(2026, month, day, 0, 0, 0, 0, time.Local),
	}
}

func newRouter(t *testing.T, txs []*transaction.Transaction, listErr error) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)

	txRepo := transaction.NewMockRepository(ctrl)
	txRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(txs, listErr).AnyTimes()

	budgetRepo := budget.NewMockRepository(ctrl)
	budgetRepo.EXPECT().ListBudgets(gomock.Any()).Return([]*budget.Budget{
		{ID: uuid.New(), Category: "food", Amount: 100000, Period: budget.PeriodMonthly},
	}, nil).AnyTimes()

	svc := analytics.NewService(
		transaction.NewService(txRepo),
		budget.NewService(budgetRepo),
		analytics.Options{OwnerA: "ayu", OwnerB: "bima"},
	)

	r := chi.NewRouter()
	r.Route("/analytics", analyticshttp.NewHandler(svc).Routes)

	return r
}

func get(t *testing.T, router http.Handler, path string, dst any) int {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	if dst != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
	}

	return rec.Code
}

func fixtures() []*transaction.Transaction {
	return []*transaction.Transaction{
		tx("bima", transaction.TypeIncome, "salary", 8000000, time.March, 1),
		tx("ayu", transaction.TypeExpense, "food", 60000, time.March, 4),
		tx("bima", transaction.TypeExpense, "food", 60000, time.March, 9),
		tx("ayu", transaction.TypeExpense, "transport", 20000, time.February, 20),
	}
}

func TestSummary(t *testing.T) {
	router := newRouter(t, fixtures(), nil)

	var got analytics.MonthlyTotals

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/summary?year=2026&month=3", &got))
	assert.InDelta(t, 8000000, got.Income, 1e-9)
	assert.InDelta(t, 120000, got.Expense, 1e-9)
	assert.InDelta(t, 7880000, got.Balance, 1e-9)
}

func TestBudgetsAndComparison(t *testing.T) {
	router := newRouter(t, fixtures(), nil)

	var report analytics.BudgetReport

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/budgets?year=2026&month=3", &report))
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].IsOver)
	assert.InDelta(t, 120, report.Rows[0].PercentUsed, 1e-9)

	var cmp analytics.PersonComparison

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/comparison?year=2026&month=3", &cmp))
	assert.InDelta(t, 50, cmp.PercentA, 1e-9)
	assert.Equal(t, "ayu", cmp.OwnerA)
}

func TestTrend(t *testing.T) {
	router := newRouter(t, fixtures(), nil)

	var points []map[string]any

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/trend?year=2026&month=3", &points))
	assert.Len(t, points, analytics.DefaultTrendWindow)
	assert.Equal(t, "Mar 2026", points[len(points)-1]["month_label"])

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/trend?year=2026&month=3&window=2", &points))
	require.Len(t, points, 2)
	assert.Equal(t, "Feb 2026", points[0]["month_label"])
	assert.InDelta(t, 20000, points[0]["expense"], 1e-9)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/analytics/trend?window=0", nil))
}

func TestLedgerAndDashboard(t *testing.T) {
	router := newRouter(t, fixtures(), nil)

	var ledger analytics.Ledger

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/ledger?year=2026&month=3", &ledger))
	require.Len(t, ledger.Rows, 3)
	assert.InDelta(t, 7880000, ledger.FinalBalance, 1e-9)

	var dash map[string]any

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/dashboard?year=2026&month=3", &dash))
	assert.Equal(t, "2026-03", dash["month"])
	assert.Contains(t, dash, "recap")
}

func TestRecap_All(t *testing.T) {
	router := newRouter(t, fixtures(), nil)

	var month, all analytics.RecapReport

	require.Equal(t, http.StatusOK, get(t, router, "/analytics/recap?year=2026&month=3", &month))
	require.Equal(t, http.StatusOK, get(t, router, "/analytics/recap?all=true", &all))

	require.Len(t, month.Groups, 1)
	require.Len(t, all.Groups, 1)
	assert.Equal(t, 3, month.Groups[0].Count)
	assert.Equal(t, 4, all.Groups[0].Count)
}

func TestErrors(t *testing.T) {
	router := newRouter(t, nil, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, get(t, router, "/analytics/summary", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/analytics/pivot?month=13", nil))
}
