package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/export"
)

type exportState int

const (
	exportStateMonth exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type exportDoneMsg struct {
	file    string
	summary string
	err     error
}

// ExportModel writes one month's ledger and summary into a zip archive.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	month   analytics.Month
	form    *huh.Form
	dir     string
	spinner spinner.Model

	file    string
	summary string
	err     error
}

func NewExportModel(svc *export.Service, now time.Time) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		month:         analytics.MonthOf(now),
		dir:           "./exports",
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Ekspor" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateMonth:
		return "←/→: month | Enter: confirm | Esc: back"
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateMonth:
		return m.updateMonth(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.String() {
	case "esc":
		return m, Back
	case "left", "h":
		m.month = m.month.Prev()
	case "right", "l":
		m.month = m.month.Next()
	case "enter":
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Folder tujuan").
				Key("dir").
				Value(&m.dir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("folder is required")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = exportStateMonth
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.dir = strings.TrimSpace(m.form.GetString("dir"))
		m.state = exportStateExporting

		return m, tea.Batch(m.spinner.Tick, m.exportCmd())
	}

	return m, cmd
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.state = exportStateResult
		m.file, m.summary, m.err = msg.file, msg.summary, msg.err

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) exportCmd() tea.Cmd {
	dir, month := m.dir, m.month

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating folder: %w", err)}
		}

		name := filepath.Join(dir, "dompet_"+month.String()+".zip")

		f, err := os.Create(name)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating archive: %w", err)}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.exportService.WriteArchive(ctx, f, month); err != nil {
			return exportDoneMsg{err: err}
		}

		summary, err := m.exportService.Summary(ctx, month)

		return exportDoneMsg{file: name, summary: summary, err: err}
	}
}

func (m ExportModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title()) + "\n\n")

	switch m.state {
	case exportStateMonth:
		b.WriteString("Bulan: " + titleStyle.Render("◀ "+m.month.Label()+" ▶"))
	case exportStatePath:
		b.WriteString(m.form.View())
	case exportStateExporting:
		b.WriteString(m.spinner.View() + " Mengekspor " + m.month.Label() + "...")
	case exportStateResult:
		if m.err != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(okStyle.Render("Disimpan ke "+m.file) + "\n\n" + m.summary)
		}
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}
