package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
)

type recapState int

const (
	recapStateList recapState = iota
	recapStateDetail
)

type groupItem struct {
	group   analytics.RecapGroup
	session Session
}

func (i groupItem) Title() string {
	if !i.group.Grouped {
		return "Tanpa grup"
	}

	if i.group.Subtitle == "" {
		return `""`
	}

	return i.group.Subtitle
}

func (i groupItem) Description() string {
	return fmt.Sprintf("%d transaksi | %s s/d %s | bersih %s",
		i.group.Count, FormatDate(i.group.First), FormatDate(i.group.Last), i.session.Money(i.group.Net))
}

func (i groupItem) FilterValue() string { return i.group.Subtitle }

// RecapModel lists transactions grouped by subtitle, for one month or for
// all time.
type RecapModel struct {
	CommonModel
	analytics *analytics.Service
	session   Session

	state   recapState
	month   analytics.Month
	allTime bool
	snap    *analytics.Snapshot
	groups  list.Model
	detail  table.Model
	current analytics.RecapGroup
	err     error
}

func NewRecapModel(a *analytics.Service, s Session, now time.Time) RecapModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return RecapModel{
		analytics: a,
		session:   s,
		month:     analytics.MonthOf(now),
		groups:    l,
		detail: newTable([]table.Column{
			{Title: "Tanggal", Width: 10},
			{Title: "Oleh", Width: 8},
			{Title: "Keterangan", Width: 28},
			{Title: "Masuk", Width: 14},
			{Title: "Keluar", Width: 14},
			{Title: "Saldo", Width: 15},
		}, 15),
	}
}

func (m RecapModel) Title() string { return "Rekap" }

func (m RecapModel) ShortHelp() string {
	if m.state == recapStateDetail {
		return "Esc: back to groups"
	}

	return "Enter: open | ←/→: month | a: all time | Esc: back"
}

func (m RecapModel) Init() tea.Cmd {
	return loadSnapshot(m.analytics)
}

func (m RecapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		m.snap, m.err = msg.snap, msg.err
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.groups.SetSize(msg.Width-4, msg.Height-6)

		return m, nil

	case tea.KeyMsg:
		if m.state == recapStateDetail {
			if msg.Type == tea.KeyEsc {
				m.state = recapStateList
				return m, nil
			}

			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)

			return m, cmd
		}

		if m.groups.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				return m, Back
			case "left":
				m.month = m.month.Prev()
				m.refresh()

				return m, nil
			case "right":
				m.month = m.month.Next()
				m.refresh()

				return m, nil
			case "a":
				m.allTime = !m.allTime
				m.refresh()

				return m, nil
			case "enter":
				if item, ok := m.groups.SelectedItem().(groupItem); ok {
					m.current = item.group
					m.detail.SetRows(m.detailRows())
					m.state = recapStateDetail
				}

				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.groups, cmd = m.groups.Update(msg)

	return m, cmd
}

func (m *RecapModel) refresh() {
	if m.snap == nil {
		return
	}

	var rep analytics.RecapReport
	if m.allTime {
		rep = analytics.Recap(m.snap.Transactions)
		m.groups.Title = "Rekap semua waktu"
	} else {
		rep = analytics.RecapMonth(m.snap.Transactions, m.month)
		m.groups.Title = "Rekap " + m.month.Label()
	}

	items := make([]list.Item, len(rep.Groups))
	for i, g := range rep.Groups {
		items[i] = groupItem{group: g, session: m.session}
	}

	m.groups.SetItems(items)
}

func (m RecapModel) detailRows() []table.Row {
	rows := make([]table.Row, 0, len(m.current.Transactions))
	for _, r := range m.current.Transactions {
		rows = append(rows, table.Row{
			FormatDate(r.Date),
			r.Owner,
			r.CategoryTag + " " + r.Label,
			m.session.Money(r.In),
			m.session.Money(r.Out),
			m.session.Money(r.RunningBalance),
		})
	}

	return rows
}

func (m RecapModel) View() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.snap == nil:
		b.WriteString("Memuat...")
	case m.state == recapStateDetail:
		title := groupItem{group: m.current}.Title()
		b.WriteString(titleStyle.Render(title) + "\n\n" + m.detail.View() + "\n")
		fmt.Fprintf(&b, "Masuk %s  Keluar %s  Bersih %s",
			incomeFg.Render(m.session.Money(m.current.Income)),
			expenseFg.Render(m.session.Money(m.current.Expense)),
			m.session.Money(m.current.Net))
	case len(m.groups.Items()) == 0:
		b.WriteString(titleStyle.Render(m.groups.Title) + "\n\n" + mutedStyle.Render("Tidak ada transaksi."))
	default:
		b.WriteString(m.groups.View())
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}
