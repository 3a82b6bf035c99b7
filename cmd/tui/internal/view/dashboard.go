package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
)

type dashboardTab int

const (
	tabSummary dashboardTab = iota
	tabLedger
	tabBudgets
	tabComparison
)

var tabNames = []string{"Ringkasan", "Buku Kas", "Anggaran", "Per Orang"}

type dashboardLoadedMsg struct {
	month analytics.Month
	dash  *analytics.Dashboard
	err   error
}

type budgetSavedMsg struct{ err error }

type DashboardModel struct {
	CommonModel
	analytics *analytics.Service
	budgets   *budget.Service
	session   Session

	month   analytics.Month
	tab     dashboardTab
	dash    *analytics.Dashboard
	ledger  table.Model
	meter   progress.Model
	spinner spinner.Model
	loading bool
	err     error
	status  string

	form *huh.Form
}

func NewDashboardModel(a *analytics.Service, b *budget.Service, s Session, now time.Time) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		analytics: a,
		budgets:   b,
		session:   s,
		month:     analytics.MonthOf(now),
		ledger: newTable([]table.Column{
			{Title: "Tanggal", Width: 10},
			{Title: "Oleh", Width: 8},
			{Title: "Keterangan", Width: 28},
			{Title: "Masuk", Width: 14},
			{Title: "Keluar", Width: 14},
			{Title: "Saldo", Width: 15},
		}, 15),
		meter:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		spinner: sp,
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard " + m.month.Label() }

func (m DashboardModel) ShortHelp() string {
	if m.form != nil {
		return "Esc: cancel"
	}

	help := "←/→: month | Tab: next tab | r: refresh | Esc: back"
	if m.tab == tabBudgets {
		help += " | n: new budget"
	}

	return help
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m DashboardModel) load() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.analytics.Dashboard(ctx, month)

		return dashboardLoadedMsg{month: month, dash: d, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		// A slow load for a month we already left is dropped.
		if msg.month != m.month {
			return m, nil
		}

		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.dash = msg.dash
			m.ledger.SetRows(m.ledgerRows())
		}

		return m, nil

	case budgetSavedMsg:
		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Gagal menyimpan anggaran: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render("Anggaran disimpan.")
		m.loading = true

		return m, tea.Batch(m.spinner.Tick, m.load())

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.ledger.SetHeight(max(msg.Height-14, 5))

		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			return m.goTo(m.month.Prev())
		case "right", "l":
			return m.goTo(m.month.Next())
		case "tab":
			m.tab = (m.tab + 1) % dashboardTab(len(tabNames))
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + dashboardTab(len(tabNames)) - 1) % dashboardTab(len(tabNames))
			return m, nil
		case "r":
			return m.goTo(m.month)
		case "n":
			if m.tab == tabBudgets {
				m.form = m.buildBudgetForm()
				m.status = ""

				return m, m.form.Init()
			}
		}
	}

	if m.tab == tabLedger {
		var cmd tea.Cmd
		m.ledger, cmd = m.ledger.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) goTo(month analytics.Month) (tea.Model, tea.Cmd) {
	m.month = month
	m.loading = true
	m.status = ""

	return m, tea.Batch(m.spinner.Tick, m.load())
}

func (m DashboardModel) buildBudgetForm() *huh.Form {
	var options []huh.Option[string]
	for _, e := range catalog.Expense() {
		options = append(options, huh.NewOption(e.Icon+" "+e.Label, e.Code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kategori").
				Key("category").
				Options(options...),
			huh.NewInput().
				Title("Batas").
				Key("amount").
				Placeholder("1.500.000").
				Validate(func(s string) error {
					_, err := ingest.ParseAmount(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Periode").
				Key("period").
				Options(
					huh.NewOption("Bulanan", string(budget.PeriodMonthly)),
					huh.NewOption("Mingguan", string(budget.PeriodWeekly)),
					huh.NewOption("Tahunan", string(budget.PeriodYearly)),
				),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m DashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form = nil
	case huh.StateCompleted:
		params := budget.CreateParams{
			Owner:    m.session.Owner,
			Category: m.form.GetString("category"),
			Period:   budget.Period(m.form.GetString("period")),
		}
		amount, _ := ingest.ParseAmount(m.form.GetString("amount"))
		params.Amount = amount
		m.form = nil

		return m, m.saveBudget(params)
	}

	return m, cmd
}

func (m DashboardModel) saveBudget(params budget.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.budgets.Create(ctx, params)

		return budgetSavedMsg{err: err}
	}
}

func (m DashboardModel) ledgerRows() []table.Row {
	rows := make([]table.Row, 0, len(m.dash.Ledger.Rows))
	for _, r := range m.dash.Ledger.Rows {
		in, out := "", ""
		if r.In > 0 {
			in = m.session.Money(r.In)
		}

		if r.Out > 0 {
			out = m.session.Money(r.Out)
		}

		rows = append(rows, table.Row{
			FormatDate(r.Date),
			r.Owner,
			r.CategoryTag + " " + r.Label,
			in,
			out,
			m.session.Money(r.RunningBalance),
		})
	}

	return rows
}

func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("◀ "+m.month.Label()+" ▶") + "  " + mutedStyle.Render(m.session.Owner))

	if m.loading && m.dash != nil {
		b.WriteString("  " + m.spinner.View())
	}

	b.WriteString("\n\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		style := tabIdle
		if dashboardTab(i) == m.tab {
			style = tabActive
		}

		tabs[i] = style.Render(name)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	switch {
	case m.form != nil:
		b.WriteString(titleStyle.Render("Anggaran baru") + "\n\n" + m.form.View())
	case m.loading && m.dash == nil:
		b.WriteString(m.spinner.View() + " Memuat...")
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.dash != nil:
		b.WriteString(m.renderTab())
	}

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}

func (m DashboardModel) renderTab() string {
	switch m.tab {
	case tabLedger:
		l := m.dash.Ledger
		if len(l.Rows) == 0 {
			return mutedStyle.Render("Belum ada transaksi bulan ini.")
		}

		return m.ledger.View() + "\n" + fmt.Sprintf("Masuk %s  Keluar %s  Saldo akhir %s",
			incomeFg.Render(m.session.Money(l.TotalIn)),
			expenseFg.Render(m.session.Money(l.TotalOut)),
			m.session.Money(l.FinalBalance))
	case tabBudgets:
		return m.renderBudgets()
	case tabComparison:
		return m.renderComparison()
	}

	return m.renderSummary()
}

func (m DashboardModel) renderSummary() string {
	t := m.dash.Totals

	var b strings.Builder

	fmt.Fprintf(&b, "Pemasukan    %s\n", incomeFg.Render(m.session.Money(t.Income)))
	fmt.Fprintf(&b, "Pengeluaran  %s\n", expenseFg.Render(m.session.Money(t.Expense)))
	fmt.Fprintf(&b, "Saldo        %s\n\n", export.FormatSigned(t.Balance, m.session.Currency))

	for _, r := range m.dash.Pivot.Rows {
		if r.Expense == 0 {
			fmt.Fprintf(&b, "%s %-20s %s\n", r.Icon, r.Label, incomeFg.Render("+"+m.session.Money(r.Income)))
			continue
		}

		fmt.Fprintf(&b, "%s %-20s %s %5.1f%% %s\n", r.Icon, r.Label,
			bar(r.PctOfExpense/100, 20, expenseFg), r.PctOfExpense, m.session.Money(r.Expense))
	}

	if t.Skipped > 0 {
		fmt.Fprintf(&b, "\n%s", mutedStyle.Render(fmt.Sprintf("%d catatan rusak dilewati", t.Skipped)))
	}

	return b.String()
}

func (m DashboardModel) renderBudgets() string {
	rep := m.dash.Budgets
	if len(rep.Rows) == 0 {
		return mutedStyle.Render("Belum ada anggaran. Tekan n untuk menambah.")
	}

	var b strings.Builder

	for _, r := range rep.Rows {
		line := fmt.Sprintf("%s %-20s %s %s / %s", r.Icon, r.Label,
			m.meter.ViewAs(r.PercentUsed/100), m.session.Money(r.Spent), m.session.Money(r.Ceiling))
		if r.Scope == analytics.ScopeAllTime {
			line += mutedStyle.Render(" (semua waktu)")
		}

		if r.IsOver {
			line += " " + errStyle.Render("LEWAT")
		}

		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\nTotal %s dari %s, sisa %s",
		m.session.Money(rep.TotalSpent), m.session.Money(rep.TotalBudget), m.session.Money(rep.TotalRemaining))

	return b.String()
}

func (m DashboardModel) renderComparison() string {
	c := m.dash.Comparison

	return fmt.Sprintf("%-8s %s %5.1f%% %s\n%-8s %s %5.1f%% %s",
		c.OwnerA, bar(c.PercentA/100, 30, expenseFg), c.PercentA, m.session.Money(c.TotalA),
		c.OwnerB, bar(c.PercentB/100, 30, incomeFg), c.PercentB, m.session.Money(c.TotalB))
}
