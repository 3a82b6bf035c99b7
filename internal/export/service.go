// Package export renders a month of the ledger for people outside the app:
// a CSV for spreadsheets, a plain-text summary for chat, or both zipped.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
)

type DashboardSource interface {
	Dashboard(ctx context.Context, m analytics.Month) (*analytics.Dashboard, error)
}

type Service struct {
	source   DashboardSource
	currency string
}

func NewService(source DashboardSource, currency string) *Service {
	return &Service{source: source, currency: currency}
}

var ledgerHeader = []string{"date", "owner", "description", "category", "in", "out", "balance"}

// WriteLedgerCSV writes the month's ledger in date order with its running
// balance.
func (s *Service) WriteLedgerCSV(ctx context.Context, w io.Writer, m analytics.Month) error {
	d, err := s.source.Dashboard(ctx, m)
	if err != nil {
		return fmt.Errorf("building ledger: %w", err)
	}

	return writeLedger(w, d.Ledger)
}

func writeLedger(w io.Writer, l analytics.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range l.Rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Owner,
			row.Label,
			row.Category,
			plain(row.In),
			plain(row.Out),
			plain(row.RunningBalance),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", row.TransactionID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Summary renders the month as text suitable for pasting into a chat.
func (s *Service) Summary(ctx context.Context, m analytics.Month) (string, error) {
	d, err := s.source.Dashboard(ctx, m)
	if err != nil {
		return "", fmt.Errorf("building summary: %w", err)
	}

	return s.renderSummary(d), nil
}

func (s *Service) renderSummary(d *analytics.Dashboard) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Ringkasan %s\n\n", d.MonthLabel)
	fmt.Fprintf(&sb, "Pemasukan   %s\n", FormatAmount(d.Totals.Income, s.currency))
	fmt.Fprintf(&sb, "Pengeluaran %s\n", FormatAmount(d.Totals.Expense, s.currency))
	fmt.Fprintf(&sb, "Saldo       %s\n", FormatSigned(d.Totals.Balance, s.currency))

	if len(d.Pivot.Rows) > 0 {
		sb.WriteString("\nPer kategori\n")

		for _, row := range d.Pivot.Rows {
			if row.Expense == 0 {
				continue
			}

			fmt.Fprintf(&sb, "* %s %s | %s | %.1f%%\n", row.Icon, row.Label, FormatAmount(row.Expense, s.currency), row.PctOfExpense)
		}
	}

	if len(d.Budgets.Rows) > 0 {
		sb.WriteString("\nAnggaran\n")

		for _, b := range d.Budgets.Rows {
			status := "ok"
			if b.IsOver {
				status = "LEWAT"
			}

			scope := ""
			if b.Scope == analytics.ScopeAllTime {
				scope = " (semua waktu)"
			}

			fmt.Fprintf(&sb, "* %s %s%s | %s / %s | %.0f%% %s\n",
				b.Icon, b.Label, scope,
				FormatAmount(b.Spent, s.currency), FormatAmount(b.Ceiling, s.currency),
				b.PercentUsed, status)
		}
	}

	c := d.Comparison
	if c.TotalA+c.TotalB > 0 {
		sb.WriteString("\nPengeluaran per orang\n")
		fmt.Fprintf(&sb, "* %s | %s | %.0f%%\n", c.OwnerA, FormatAmount(c.TotalA, s.currency), c.PercentA)
		fmt.Fprintf(&sb, "* %s | %s | %.0f%%\n", c.OwnerB, FormatAmount(c.TotalB, s.currency), c.PercentB)
	}

	if skipped := d.Totals.Skipped; skipped > 0 {
		fmt.Fprintf(&sb, "\n%d transaksi rusak dilewati\n", skipped)
	}

	return sb.String()
}

// WriteArchive zips the month's ledger CSV and text summary into w.
func (s *Service) WriteArchive(ctx context.Context, w io.Writer, m analytics.Month) error {
	d, err := s.source.Dashboard(ctx, m)
	if err != nil {
		return fmt.Errorf("building archive: %w", err)
	}

	zw := zip.NewWriter(w)

	lf, err := zw.Create(fmt.Sprintf("ledger_%s.csv", m))
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	if err := writeLedger(lf, d.Ledger); err != nil {
		return err
	}

	sf, err := zw.Create(fmt.Sprintf("summary_%s.txt", m))
	if err != nil {
		return fmt.Errorf("creating summary entry: %w", err)
	}

	if _, err := io.WriteString(sf, s.renderSummary(d)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return zw.Close()
}
