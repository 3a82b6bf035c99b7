package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// RecapGroup collects transactions sharing a subtitle. The ungrouped bucket
// (nil subtitle) has Grouped false and is never merged with a subtitle of "".
type RecapGroup struct {
	Subtitle     string      `json:"subtitle"`
	Grouped      bool        `json:"grouped"`
	Income       float64     `json:"income"`
	Expense      float64     `json:"expense"`
	Net          float64     `json:"net"`
	Count        int         `json:"count"`
	First        time.Time   `json:"first"`
	Last         time.Time   `json:"last"`
	Transactions []LedgerRow `json:"transactions"`
}

type RecapReport struct {
	Groups  []RecapGroup `json:"groups"`
	Skipped int          `json:"skipped"`
}

// Recap groups the whole snapshot by subtitle. Named groups are ordered by
// their most recent transaction, newest first, then by name; the ungrouped
// bucket comes last.
func Recap(txs []*transaction.Transaction) RecapReport {
	valid, skipped := wellFormed(txs)
	return recap(valid, skipped)
}

// RecapMonth is Recap restricted to one month.
func RecapMonth(txs []*transaction.Transaction, m Month) RecapReport {
	filtered, skipped := inMonth(txs, m)
	return recap(filtered, skipped)
}

type recapKey struct {
	grouped  bool
	subtitle string
}

func recap(txs []*transaction.Transaction, skipped int) RecapReport {
	buckets := make(map[recapKey][]*transaction.Transaction)

	var keys []recapKey

	for _, tx := range txs {
		k := recapKey{}
		if tx.Subtitle != nil {
			k = recapKey{grouped: true, subtitle: *tx.Subtitle}
		}

		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}

		buckets[k] = append(buckets[k], tx)
	}

	groups := make([]RecapGroup, 0, len(keys))

	for _, k := range keys {
		groups = append(groups, buildGroup(k, buckets[k]))
	}

	slices.SortStableFunc(groups, func(a, b RecapGroup) int {
		if a.Grouped != b.Grouped {
			if a.Grouped {
				return -1
			}

			return 1
		}

		if c := cmp.Compare(civilDay(b.Last), civilDay(a.Last)); c != 0 {
			return c
		}

		return cmp.Compare(a.Subtitle, b.Subtitle)
	})

	return RecapReport{Groups: groups, Skipped: skipped}
}

func buildGroup(k recapKey, txs []*transaction.Transaction) RecapGroup {
	ordered := append([]*transaction.Transaction(nil), txs...)
	slices.SortStableFunc(ordered, func(a, b *transaction.Transaction) int {
		return cmp.Compare(civilDay(a.Date), civilDay(b.Date))
	})

	g := RecapGroup{
		Subtitle: k.subtitle,
		Grouped:  k.grouped,
		Count:    len(ordered),
		First:    ordered[0].Date,
		Last:     ordered[len(ordered)-1].Date,
	}

	rows := make([]LedgerRow, 0, len(ordered))
	balance := 0.0

	for _, tx := range ordered {
		row := ledgerRow(tx)
		balance += row.In - row.Out
		row.RunningBalance = balance

		g.Income += row.In
		g.Expense += row.Out
		rows = append(rows, row)
	}

	g.Net = g.Income - g.Expense
	g.Transactions = rows

	return g
}
