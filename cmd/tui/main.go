package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dompet/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dompet/internal/budget/store"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/database"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/dompet/internal/matching/store"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
	txStore "github.com/MrJamesThe3rd/dompet/internal/transaction/store"
)

type model struct {
	appName          string
	session          view.Session
	analyticsService *analytics.Service
	budgetService    *budget.Service
	ingestService    *ingest.Service
	importService    *importer.Service
	exportService    *export.Service

	// active is nil while the menu is showing.
	active view.View
	width  int
	height int
}

var menuItems = []string{
	"Dashboard",
	"Tren",
	"Rekap",
	"Input massal",
	"Impor CSV",
	"Ekspor",
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if _, err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	owners := cfg.Owners()

	txSvc := transaction.NewService(txStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db))
	analyticsSvc := analytics.NewService(txSvc, budgetSvc, analytics.Options{
		OwnerA:      owners[0],
		OwnerB:      owners[1],
		TrendWindow: cfg.Analytics.TrendWindow,
	})
	ingestSvc := ingest.NewService(txSvc, cfg.Workspace.Currency, owners[0], owners[1])

	return model{
		appName: cfg.App.Name,
		session: view.Session{
			Owner:    owners[0],
			Owners:   owners,
			Currency: cfg.Workspace.Currency,
		},
		analyticsService: analyticsSvc,
		budgetService:    budgetSvc,
		ingestService:    ingestSvc,
		importService:    importer.NewService(ingestSvc, matching.NewService(matchingStore.New(db))),
		exportService:    export.NewService(analyticsSvc, cfg.Workspace.Currency),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(key string) (view.View, bool) {
	now := time.Now()

	switch key {
	case "1":
		return view.NewDashboardModel(m.analyticsService, m.budgetService, m.session, now), true
	case "2":
		return view.NewTrendModel(m.analyticsService, m.session, now), true
	case "3":
		return view.NewRecapModel(m.analyticsService, m.session, now), true
	case "4":
		return view.NewBulkModel(m.ingestService, m.session, now), true
	case "5":
		return view.NewImportModel(m.importService, m.session), true
	case "6":
		return view.NewExportModel(m.exportService, now), true
	}

	return nil, false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "o":
				m.session.Owner = m.session.Other()
				return m, nil
			}

			if v, ok := m.open(msg.String()); ok {
				m.active = v
				return m, tea.Batch(v.Init(), m.resize())
			}

			return m, nil
		}
	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

// resize replays the last known window size to a freshly opened view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) View() string {
	if m.active != nil {
		return m.active.View()
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s  (%s)\n\n", m.appName, m.session.Owner)

	for i, item := range menuItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}

	fmt.Fprintf(&b, "\no. Ganti ke %s\nq. Keluar", m.session.Other())

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
