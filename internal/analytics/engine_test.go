package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var march = analytics.Month{Year: 2026, Month: time.March}

func TestTotals_MarchScenario(t *testing.T) {
	got := analytics.Totals(marchScenario(), march)

	assert.Equal(t, analytics.MonthlyTotals{Income: 500000, Expense: 70000, Balance: 430000}, got)
}

func TestTotals_EmptyMonthIsZero(t *testing.T) {
	got := analytics.Totals(marchScenario(), analytics.Month{Year: 2026, Month: time.April})
	assert.Equal(t, analytics.MonthlyTotals{}, got)

	assert.Equal(t, analytics.MonthlyTotals{}, analytics.Totals(nil, march))
}

func TestTotals_SkipsMalformed(t *testing.T) {
	txs := marchScenario()
	txs = append(txs,
		&transaction.Transaction{Type: "transfer", Amount: 10, Date: day(2026, 3, 3)},
		expense("ayu", "food", math.NaN(), day(2026, 3, 3)),
		expense("ayu", "food", -5, day(2026, 3, 3)),
		nil,
	)

	got := analytics.Totals(txs, march)
	assert.Equal(t, 500000.0, got.Income)
	assert.Equal(t, 70000.0, got.Expense)
	assert.Equal(t, 4, got.Skipped)
}

func TestCheck(t *testing.T) {
	var verr *analytics.ValidationError

	require.ErrorAs(t, analytics.Check(&transaction.Transaction{Type: "x"}), &verr)
	assert.Contains(t, verr.Reason, "unknown type")

	require.ErrorAs(t, analytics.Check(expense("a", "food", math.Inf(1), day(2026, 1, 1))), &verr)
	assert.Equal(t, "amount is not finite", verr.Reason)

	assert.NoError(t, analytics.Check(expense("a", "food", 0, day(2026, 1, 1))))
}

func TestLedger_MarchScenario(t *testing.T) {
	l := analytics.BuildLedger(marchScenario(), march)

	require.Len(t, l.Rows, 3)

	assert.Equal(t, day(2026, 3, 1), l.Rows[0].Date)
	assert.Equal(t, 500000.0, l.Rows[0].In)
	assert.Equal(t, 500000.0, l.Rows[0].RunningBalance)

	assert.Equal(t, day(2026, 3, 2), l.Rows[1].Date)
	assert.Equal(t, 50000.0, l.Rows[1].Out)
	assert.Equal(t, 450000.0, l.Rows[1].RunningBalance)

	assert.Equal(t, day(2026, 3, 5), l.Rows[2].Date)
	assert.Equal(t, 20000.0, l.Rows[2].Out)
	assert.Equal(t, 430000.0, l.Rows[2].RunningBalance)

	assert.Equal(t, 500000.0, l.TotalIn)
	assert.Equal(t, 70000.0, l.TotalOut)
	assert.Equal(t, 430000.0, l.FinalBalance)
}

func TestLedger_Empty(t *testing.T) {
	l := analytics.BuildLedger(marchScenario(), analytics.Month{Year: 2025, Month: time.March})

	assert.Empty(t, l.Rows)
	assert.Zero(t, l.FinalBalance)
}

func TestLedger_RunningBalanceIsConsistent(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("ayu", "food", 12500, day(2026, 3, 20)),
		income("bima", "freelance", 300000, day(2026, 3, 11)),
		expense("bima", "bills", 450000, day(2026, 3, 11)),
		income("ayu", "salary", 7000000, day(2026, 3, 25)),
		expense("ayu", "shopping", 99000, day(2026, 3, 1)),
		expense("ayu", "food", 15000, day(2026, 2, 28)),
	}

	l := analytics.BuildLedger(txs, march)
	require.Len(t, l.Rows, 5)

	assert.Equal(t, l.Rows[0].In-l.Rows[0].Out, l.Rows[0].RunningBalance)

	for i := 1; i < len(l.Rows); i++ {
		assert.False(t, l.Rows[i].Date.Before(l.Rows[i-1].Date), "row %d out of order", i)
		assert.InDelta(t, l.Rows[i-1].RunningBalance+l.Rows[i].In-l.Rows[i].Out, l.Rows[i].RunningBalance, 1e-9)
	}

	assert.Equal(t, l.Rows[len(l.Rows)-1].RunningBalance, l.FinalBalance)
}

func TestLedger_SameDayKeepsInputOrder(t *testing.T) {
	first := expense("ayu", "food", 10, day(2026, 3, 4))
	second := income("ayu", "gift", 30, day(2026, 3, 4))
	third := expense("ayu", "transport", 5, day(2026, 3, 4))

	l := analytics.BuildLedger([]*transaction.Transaction{first, second, third}, march)
	require.Len(t, l.Rows, 3)
	assert.Equal(t, first.ID, l.Rows[0].TransactionID)
	assert.Equal(t, second.ID, l.Rows[1].TransactionID)
	assert.Equal(t, third.ID, l.Rows[2].TransactionID)
	assert.Equal(t, []float64{-10, 20, 15}, []float64{l.Rows[0].RunningBalance, l.Rows[1].RunningBalance, l.Rows[2].RunningBalance})
}

func TestLedger_LabelFallsBackToCategory(t *testing.T) {
	txs := []*transaction.Transaction{
		withDescription(expense("ayu", "food", 10, day(2026, 3, 4)), "Bakso"),
		withDescription(expense("ayu", "food", 10, day(2026, 3, 5)), "   "),
		expense("ayu", "mystery", 10, day(2026, 3, 6)),
	}

	l := analytics.BuildLedger(txs, march)
	require.Len(t, l.Rows, 3)
	assert.Equal(t, "Bakso", l.Rows[0].Label)
	assert.Equal(t, "Makanan & Minuman", l.Rows[1].Label)
	assert.Equal(t, catalog.Other.Label, l.Rows[2].Label)
	assert.Equal(t, "mystery", l.Rows[2].Category)
}

func TestLedger_DoesNotReorderInput(t *testing.T) {
	txs := marchScenario()
	firstID := txs[0].ID

	analytics.BuildLedger(txs, march)
	assert.Equal(t, firstID, txs[0].ID)
}

func TestCategoryPivot(t *testing.T) {
	txs := append(marchScenario(),
		expense("bima", "food", 30000, day(2026, 3, 9)),
		income("bima", "food", 10000, day(2026, 3, 9)),
	)

	p := analytics.CategoryPivot(txs, march)

	assert.Equal(t, 5, p.Count)
	assert.Equal(t, 510000.0, p.TotalIncome)
	assert.Equal(t, 100000.0, p.TotalExpense)
	require.Len(t, p.Rows, 3)

	assert.Equal(t, "salary", p.Rows[0].Category)
	assert.Equal(t, "Gaji", p.Rows[0].Label)

	food := p.Rows[1]
	assert.Equal(t, "food", food.Category)
	assert.Equal(t, 80000.0, food.Expense)
	assert.Equal(t, 10000.0, food.Income)
	assert.InDelta(t, 80.0, food.PctOfExpense, 1e-9)
	assert.InDelta(t, 10000.0/510000*100, food.PctOfIncome, 1e-9)

	assert.Equal(t, "transport", p.Rows[2].Category)
}

func TestCategoryPivot_PercentagesBounded(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("ayu", "food", 1, day(2026, 3, 1)),
		expense("ayu", "bills", 1, day(2026, 3, 1)),
		expense("ayu", "transport", 1, day(2026, 3, 1)),
	}

	p := analytics.CategoryPivot(txs, march)

	var incomePct, expensePct float64
	for _, r := range p.Rows {
		incomePct += r.PctOfIncome
		expensePct += r.PctOfExpense
	}

	assert.Zero(t, incomePct)
	assert.LessOrEqual(t, expensePct, 100.0+1e-9)
	assert.InDelta(t, 100.0, expensePct, 1e-9)
}

func TestCategoryPivot_TiesBrokenByCode(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("ayu", "transport", 100, day(2026, 3, 1)),
		expense("ayu", "bills", 100, day(2026, 3, 1)),
		expense("ayu", "food", 100, day(2026, 3, 1)),
	}

	p := analytics.CategoryPivot(txs, march)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, []string{"bills", "food", "transport"}, []string{p.Rows[0].Category, p.Rows[1].Category, p.Rows[2].Category})
}

func TestCategoryPivot_Empty(t *testing.T) {
	p := analytics.CategoryPivot(nil, march)
	assert.Empty(t, p.Rows)
	assert.Zero(t, p.Count)
}

func TestUtilization(t *testing.T) {
	txs := append(marchScenario(),
		expense("bima", "food", 70000, day(2026, 3, 15)),
		expense("bima", "food", 999999, day(2026, 2, 15)),
	)

	food := monthly("food", 100000)
	transport := monthly("transport", 50000)

	r := analytics.Utilization(txs, []*budget.Budget{food, transport}, march)
	require.Len(t, r.Rows, 2)

	f := r.Rows[0]
	assert.Equal(t, food.ID, f.BudgetID)
	assert.Equal(t, analytics.ScopeMonth, f.Scope)
	assert.Equal(t, 120000.0, f.Spent)
	assert.Equal(t, -20000.0, f.Remaining)
	assert.Equal(t, 100.0, f.PercentUsed)
	assert.True(t, f.IsOver)

	tr := r.Rows[1]
	assert.Equal(t, 20000.0, tr.Spent)
	assert.InDelta(t, 40.0, tr.PercentUsed, 1e-9)
	assert.False(t, tr.IsOver)

	assert.Equal(t, 150000.0, r.TotalBudget)
	assert.Equal(t, 140000.0, r.TotalSpent)
	assert.Equal(t, 10000.0, r.TotalRemaining)
}

func TestUtilization_Boundaries(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("ayu", "bills", 500, day(2026, 3, 1)),
		income("ayu", "bills", 10000, day(2026, 3, 1)),
	}

	exact := monthly("bills", 500)
	zero := monthly("bills", 0)
	unused := monthly("health", 0)

	r := analytics.Utilization(txs, []*budget.Budget{exact, zero, unused}, march)
	require.Len(t, r.Rows, 3)

	assert.Equal(t, 100.0, r.Rows[0].PercentUsed)
	assert.False(t, r.Rows[0].IsOver, "spent equal to ceiling is not over")

	assert.Zero(t, r.Rows[1].PercentUsed, "zero ceiling yields zero percent")
	assert.True(t, r.Rows[1].IsOver)

	assert.Zero(t, r.Rows[2].PercentUsed)
	assert.False(t, r.Rows[2].IsOver)

	for _, row := range r.Rows {
		assert.GreaterOrEqual(t, row.PercentUsed, 0.0)
		assert.LessOrEqual(t, row.PercentUsed, 100.0)
	}
}

func TestUtilization_DuplicateBudgetsAreNotMerged(t *testing.T) {
	a := monthly("food", 100000)
	b := monthly("food", 200000)

	r := analytics.Utilization(marchScenario(), []*budget.Budget{a, b}, march)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, 50000.0, r.Rows[0].Spent)
	assert.Equal(t, 50000.0, r.Rows[1].Spent)
	assert.Equal(t, 100000.0, r.TotalSpent)
}

// Weekly and yearly budgets are not bucketed by period: they count every
// matching expense ever recorded and say so through Scope.
func TestUtilization_NonMonthlyPeriodsCountAllTime(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("ayu", "food", 10000, day(2024, 7, 1)),
		expense("ayu", "food", 20000, day(2026, 2, 1)),
		expense("ayu", "food", 30000, day(2026, 3, 1)),
	}

	weekly := &budget.Budget{Category: "food", Amount: 50000, Period: budget.PeriodWeekly}
	yearly := &budget.Budget{Category: "food", Amount: 50000, Period: budget.PeriodYearly}

	r := analytics.Utilization(txs, []*budget.Budget{weekly, yearly}, march)
	require.Len(t, r.Rows, 2)

	for _, row := range r.Rows {
		assert.Equal(t, analytics.ScopeAllTime, row.Scope)
		assert.Equal(t, 60000.0, row.Spent)
		assert.True(t, row.IsOver)
	}
}

func TestTrend_CrossesYearBoundary(t *testing.T) {
	txs := []*transaction.Transaction{
		income("ayu", "salary", 1000, day(2025, 8, 10)),
		expense("ayu", "food", 300, day(2025, 12, 31)),
		income("ayu", "salary", 2000, day(2026, 1, 1)),
		expense("ayu", "food", 500, day(2026, 1, 20)),
		income("ayu", "salary", 9999, day(2025, 7, 31)),
	}

	points := analytics.Trend(txs, analytics.Month{Year: 2026, Month: time.January}, 6)
	require.Len(t, points, 6)

	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.MonthLabel
	}

	assert.Equal(t, []string{"Aug 2025", "Sep 2025", "Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026"}, labels)

	assert.Equal(t, 1000.0, points[0].Income)
	assert.Equal(t, 1000.0, points[0].Savings)
	assert.Equal(t, -300.0, points[4].Savings)
	assert.Equal(t, 2000.0, points[5].Income)
	assert.Equal(t, 500.0, points[5].Expense)
	assert.Equal(t, 1500.0, points[5].Savings)
}

func TestTrend_DefaultWindow(t *testing.T) {
	points := analytics.Trend(nil, march, 0)
	require.Len(t, points, analytics.DefaultTrendWindow)
	assert.Equal(t, "Oct 2025", points[0].MonthLabel)
	assert.Equal(t, "Mar 2026", points[5].MonthLabel)

	assert.Len(t, analytics.Trend(nil, march, 12), 12)
}

func TestComparePersons(t *testing.T) {
	txs := append(marchScenario(),
		expense("bima", "food", 30000, day(2026, 3, 7)),
		expense("guest", "food", 1000000, day(2026, 3, 7)),
	)

	c := analytics.ComparePersons(txs, march, "ayu", "bima")
	assert.Equal(t, 50000.0, c.TotalA)
	assert.Equal(t, 50000.0, c.TotalB)
	assert.Equal(t, 50.0, c.PercentA)
	assert.Equal(t, 50.0, c.PercentB)

	txs = append(txs, expense("ayu", "bills", 100000, day(2026, 3, 8)))
	c = analytics.ComparePersons(txs, march, "ayu", "bima")
	assert.InDelta(t, 75.0, c.PercentA, 1e-9)
	assert.InDelta(t, 25.0, c.PercentB, 1e-9)
}

func TestComparePersons_EmptyIsEvenSplit(t *testing.T) {
	c := analytics.ComparePersons([]*transaction.Transaction{
		income("ayu", "salary", 100, day(2026, 3, 1)),
	}, march, "ayu", "bima")

	assert.Zero(t, c.TotalA)
	assert.Zero(t, c.TotalB)
	assert.Equal(t, 50.0, c.PercentA)
	assert.Equal(t, 50.0, c.PercentB)
}
