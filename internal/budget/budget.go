package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("budget not found")

// Period is the window a budget ceiling applies to.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}

	return false
}

// Budget is a spending ceiling for one expense category. Budgets are shared
// by the whole workspace; Owner only records who created it.
type Budget struct {
	ID        uuid.UUID
	Owner     string
	Category  string
	Amount    float64
	Period    Period
	CreatedAt time.Time
	UpdatedAt *time.Time
}
