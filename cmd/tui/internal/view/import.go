package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateOwnerSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type importResultMsg struct {
	report *importer.Report
	err    error
}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	session       Session

	state       importState
	filePicker  filepicker.Model
	ownerCursor int
	owner       string
	path        string

	report *importer.Report
	err    error
}

func NewImportModel(svc *importer.Service, s Session) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	cursor := 0
	if s.Owner == s.Owners[1] {
		cursor = 1
	}

	return ImportModel{
		importService: svc,
		session:       s,
		filePicker:    fp,
		ownerCursor:   cursor,
	}
}

func (m ImportModel) Title() string { return "Impor CSV" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateOwnerSelect {
			return m.updateOwnerSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.report, m.err = msg.report, msg.err

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.path = path

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateOwnerSelect
		m.report, m.err = nil, nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateOwnerSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.ownerCursor = 0
	case tea.KeyDown:
		m.ownerCursor = 1
	case tea.KeyEnter:
		m.owner = m.session.Owners[m.ownerCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	owner := m.owner

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("opening file: %w", err)}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		report, err := m.importService.Import(ctx, owner, f)

		return importResultMsg{report: report, err: err}
	}
}

func (m ImportModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title()) + "\n\n")

	switch m.state {
	case importStateOwnerSelect:
		b.WriteString("Transaksi tanpa kolom pemilik dicatat atas nama:\n\n")

		for i, owner := range m.session.Owners {
			cursor := " "
			if i == m.ownerCursor {
				cursor = ">"
			}

			fmt.Fprintf(&b, "%s %s\n", cursor, owner)
		}
	case importStateFilePick:
		b.WriteString("Pilih file CSV:\n\n" + m.filePicker.View())
	case importStateImporting:
		fmt.Fprintf(&b, "Mengimpor %s...", filepath.Base(m.path))
	case importStateResult:
		b.WriteString(m.viewResult())
	}

	b.WriteString("\n\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		var batchErr *ingest.BatchError

		switch {
		case errors.Is(m.err, importer.ErrUnknownFormat):
			return errStyle.Render("Header CSV tidak dikenali. Kolom yang didukung: tanggal/date, keterangan/description, jumlah/amount atau masuk+keluar.")
		case errors.As(m.err, &batchErr):
			return errStyle.Render(fmt.Sprintf("Tidak ada baris yang valid (%d ditolak): %s", batchErr.Rejected, batchErr.FirstError))
		}

		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	r := m.report

	var b strings.Builder

	fmt.Fprintf(&b, "Format   %s\nEncoding %s\nBaris    %d\nAturan   %d baris diubah\n\n", r.Profile, r.Charset, r.Parsed, r.Rewritten)
	b.WriteString(okStyle.Render(fmt.Sprintf("%d transaksi diimpor.", r.Outcome.Inserted)))

	const shown = 10

	if n := len(r.Outcome.Rejected); n > 0 {
		fmt.Fprintf(&b, "\n\n%d baris ditolak:\n", n)

		for _, rej := range r.Outcome.Rejected[:min(n, shown)] {
			b.WriteString(errStyle.Render("  "+rej.Error()) + "\n")
		}

		if n > shown {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  ...dan %d lainnya", n-shown)))
		}
	}

	return b.String()
}
