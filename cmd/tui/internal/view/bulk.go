package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type bulkState int

const (
	bulkStateRows bulkState = iota
	bulkStateForm
	bulkStateSubmitting
	bulkStateResult
)

type bulkResultMsg struct {
	outcome *ingest.Outcome
	err     error
}

// BulkModel collects draft rows and submits them as one batch. Rows are
// kept exactly as typed; the batch validator decides what is accepted.
type BulkModel struct {
	CommonModel
	ingest  *ingest.Service
	session Session
	today   time.Time

	state   bulkState
	rows    []ingest.DraftRow
	draft   *ingest.DraftRow
	form    *huh.Form
	outcome *ingest.Outcome
	err     error
}

func NewBulkModel(svc *ingest.Service, s Session, now time.Time) BulkModel {
	return BulkModel{ingest: svc, session: s, today: now}
}

func (m BulkModel) Title() string { return "Input Massal" }

func (m BulkModel) ShortHelp() string {
	switch m.state {
	case bulkStateForm:
		return "Esc: discard row"
	case bulkStateResult:
		return "Esc: back to menu"
	case bulkStateSubmitting:
		return "Menyimpan..."
	}

	return "a: add row | d: drop last | s: submit | Esc: back"
}

func (m BulkModel) Init() tea.Cmd {
	return nil
}

func (m BulkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case bulkStateForm:
		return m.updateForm(msg)
	case bulkStateSubmitting:
		if res, ok := msg.(bulkResultMsg); ok {
			m.state = bulkStateResult
			m.outcome, m.err = res.outcome, res.err

			if res.err == nil {
				m.rows = rejectedRows(m.rows, res.outcome.Rejected)
			}
		}

		return m, nil
	case bulkStateResult:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				m.state = bulkStateRows
			}
		}

		return m, nil
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.String() {
	case "esc":
		return m, Back
	case "a":
		m.draft = &ingest.DraftRow{
			Owner: m.session.Owner,
			Type:  string(transaction.TypeExpense),
			Date:  FormatDate(m.today),
		}
		m.form = m.buildForm(m.draft)
		m.state = bulkStateForm

		return m, m.form.Init()
	case "d":
		if len(m.rows) > 0 {
			m.rows = m.rows[:len(m.rows)-1]
		}
	case "s":
		if len(m.rows) == 0 {
			return m, nil
		}

		m.state = bulkStateSubmitting

		return m, m.submit(append([]ingest.DraftRow(nil), m.rows...))
	}

	return m, nil
}

func (m BulkModel) buildForm(d *ingest.DraftRow) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Oleh").
				Options(huh.NewOptions(m.session.Owners[0], m.session.Owners[1])...).
				Value(&d.Owner),
			huh.NewSelect[string]().
				Title("Jenis").
				Options(
					huh.NewOption("Pengeluaran", string(transaction.TypeExpense)),
					huh.NewOption("Pemasukan", string(transaction.TypeIncome)),
				).
				Value(&d.Type),
			huh.NewSelect[string]().
				Title("Kategori").
				OptionsFunc(func() []huh.Option[string] {
					entries := catalog.Expense()
					if d.Type == string(transaction.TypeIncome) {
						entries = catalog.Income()
					}

					options := make([]huh.Option[string], len(entries))
					for i, e := range entries {
						options[i] = huh.NewOption(e.Icon+" "+e.Label, e.Code)
					}

					return options
				}, &d.Type).
				Value(&d.Category),
		),
		huh.NewGroup(
			huh.NewInput().Title("Jumlah").Placeholder("50.000").Value(&d.Amount),
			huh.NewInput().Title("Keterangan").Value(&d.Description),
			huh.NewInput().Title("Tanggal").Placeholder("2006-01-02").Value(&d.Date),
			huh.NewInput().Title("Grup (opsional)").Value(&d.Subtitle),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m BulkModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = bulkStateRows
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = bulkStateRows
		m.form = nil
	case huh.StateCompleted:
		m.rows = append(m.rows, *m.draft)
		m.state = bulkStateRows
		m.form = nil
	}

	return m, cmd
}

func (m BulkModel) submit(rows []ingest.DraftRow) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		out, err := m.ingest.Submit(ctx, m.session.Owner, rows)

		return bulkResultMsg{outcome: out, err: err}
	}
}

// rejectedRows keeps the rows the validator turned down so they can be
// fixed and resubmitted.
func rejectedRows(rows []ingest.DraftRow, rejected []ingest.Rejection) []ingest.DraftRow {
	var kept []ingest.DraftRow
	for _, r := range rejected {
		if r.Row >= 1 && r.Row <= len(rows) {
			kept = append(kept, rows[r.Row-1])
		}
	}

	return kept
}

func (m BulkModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title()) + "\n\n")

	switch m.state {
	case bulkStateForm:
		b.WriteString(m.form.View())
	case bulkStateSubmitting:
		b.WriteString("Menyimpan...")
	case bulkStateResult:
		b.WriteString(m.renderResult())
	default:
		b.WriteString(m.renderRows())
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}

func (m BulkModel) renderRows() string {
	if len(m.rows) == 0 {
		return mutedStyle.Render("Belum ada baris. Tekan a untuk menambah.")
	}

	var b strings.Builder
	for i, r := range m.rows {
		fmt.Fprintf(&b, "%2d. %-10s %-6s %-8s %-14s %-12s %s\n",
			i+1, r.Date, r.Owner, r.Type, r.Category, r.Amount, r.Description)
	}

	return b.String()
}

func (m BulkModel) renderResult() string {
	if m.err != nil {
		var batchErr *ingest.BatchError
		if errors.As(m.err, &batchErr) {
			return errStyle.Render(fmt.Sprintf("Tidak ada baris yang valid (%d ditolak): %s",
				batchErr.Rejected, batchErr.FirstError)) + "\n\n" + mutedStyle.Render("Enter: fix rows")
		}

		return errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + mutedStyle.Render("Enter: retry")
	}

	var b strings.Builder

	b.WriteString(okStyle.Render(fmt.Sprintf("%d transaksi disimpan.", m.outcome.Inserted)))

	if len(m.outcome.Rejected) > 0 {
		fmt.Fprintf(&b, "\n\n%d baris ditolak:\n", len(m.outcome.Rejected))

		for _, r := range m.outcome.Rejected {
			b.WriteString(errStyle.Render("  "+r.Error()) + "\n")
		}
	}

	return b.String()
}
