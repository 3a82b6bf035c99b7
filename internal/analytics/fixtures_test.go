package analytics_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
}

func expense(owner, category string, amount float64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Owner:    owner,
		Type:     transaction.TypeExpense,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func income(owner, category string, amount float64, date time.Time) *transaction.Transaction {
	tx := expense(owner, category, amount, date)
	tx.Type = transaction.TypeIncome

	return tx
}

func withSubtitle(tx *transaction.Transaction, s string) *transaction.Transaction {
	tx.Subtitle = &s
	return tx
}

func withDescription(tx *transaction.Transaction, d string) *transaction.Transaction {
	tx.Description = d
	return tx
}

func monthly(category string, ceiling float64) *budget.Budget {
	return &budget.Budget{ID: uuid.New(), Category: category, Amount: ceiling, Period: budget.PeriodMonthly}
}

// marchScenario is the worked example: food, salary and transport in March 2026.
func marchScenario() []*transaction.Transaction {
	return []*transaction.Transaction{
		expense("ayu", "food", 50000, day(2026, 3, 2)),
		income("ayu", "salary", 500000, day(2026, 3, 1)),
		expense("bima", "transport", 20000, day(2026, 3, 5)),
	}
}
