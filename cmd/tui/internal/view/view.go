package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Session is who is at the keyboard and how amounts are shown.
type Session struct {
	Owner    string
	Owners   [2]string
	Currency string
}

// Other returns the owner that is not at the keyboard.
func (s Session) Other() string {
	if s.Owner == s.Owners[0] {
		return s.Owners[1]
	}

	return s.Owners[0]
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	incomeFg   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseFg  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	tabActive  = lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229"))
	tabIdle    = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	pad        = lipgloss.NewStyle().Padding(1, 2)
)
