package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
)

const maxTrendWindow = 24

type snapshotLoadedMsg struct {
	snap *analytics.Snapshot
	err  error
}

// TrendModel charts income and expense over consecutive months ending at
// the anchor month.
type TrendModel struct {
	CommonModel
	analytics *analytics.Service
	session   Session

	anchor analytics.Month
	window int
	snap   *analytics.Snapshot
	err    error
}

func NewTrendModel(a *analytics.Service, s Session, now time.Time) TrendModel {
	return TrendModel{
		analytics: a,
		session:   s,
		anchor:    analytics.MonthOf(now),
		window:    a.Options().TrendWindow,
	}
}

func (m TrendModel) Title() string { return "Tren" }

func (m TrendModel) ShortHelp() string {
	return "←/→: shift | +/-: window | Esc: back"
}

func (m TrendModel) Init() tea.Cmd {
	return loadSnapshot(m.analytics)
}

func loadSnapshot(svc *analytics.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := svc.Snapshot(ctx)

		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (m TrendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		m.snap, m.err = msg.snap, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.anchor = m.anchor.Prev()
		case "right", "l":
			m.anchor = m.anchor.Next()
		case "+", "=":
			m.window = min(m.window+1, maxTrendWindow)
		case "-":
			m.window = max(m.window-1, 1)
		}
	}

	return m, nil
}

func (m TrendModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Tren %d bulan s/d %s", m.window, m.anchor.Label())) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.snap == nil:
		b.WriteString("Memuat...")
	default:
		b.WriteString(m.chart())
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}

func (m TrendModel) chart() string {
	points := analytics.Trend(m.snap.Transactions, m.anchor, m.window)

	peak := 0.0
	for _, p := range points {
		peak = max(peak, p.Income, p.Expense)
	}

	var b strings.Builder

	for _, p := range points {
		in, out := 0.0, 0.0
		if peak > 0 {
			in, out = p.Income/peak, p.Expense/peak
		}

		fmt.Fprintf(&b, "%-8s %s %s\n", p.MonthLabel, bar(in, 30, incomeFg), m.session.Money(p.Income))
		fmt.Fprintf(&b, "%-8s %s %s  %s\n\n", "", bar(out, 30, expenseFg), m.session.Money(p.Expense),
			mutedStyle.Render("hemat "+m.session.Money(p.Savings)))
	}

	return strings.TrimRight(b.String(), "\n")
}
