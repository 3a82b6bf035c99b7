package view

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
)

var testSession = Session{Owner: "ayu", Owners: [2]string{"ayu", "bima"}, Currency: "IDR"}

func TestSession_Other(t *testing.T) {
	assert.Equal(t, "bima", testSession.Other())

	s := testSession
	s.Owner = "bima"
	assert.Equal(t, "ayu", s.Other())
}

func TestRejectedRows(t *testing.T) {
	rows := []ingest.DraftRow{{Description: "a"}, {Description: "b"}, {Description: "c"}}

	kept := rejectedRows(rows, []ingest.Rejection{
		{Row: 1, Err: errors.New("x")},
		{Row: 3, Err: errors.New("y")},
		{Row: 9, Err: errors.New("out of range")},
	})

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Description)
	assert.Equal(t, "c", kept[1].Description)
	assert.Empty(t, rejectedRows(rows, nil))
}

func TestDashboard_MonthNavigation(t *testing.T) {
	m := NewDashboardModel(nil, nil, testSession, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.NotNil(t, cmd)

	d := next.(DashboardModel)
	assert.Equal(t, analytics.Month{Year: 2025, Month: time.December}, d.month)
	assert.True(t, d.loading)

	// A load for a month no longer shown is dropped.
	stale, _ := d.Update(dashboardLoadedMsg{month: analytics.Month{Year: 2026, Month: time.January}, dash: &analytics.Dashboard{}})
	assert.Nil(t, stale.(DashboardModel).dash)
}

func TestDashboard_TabsWrap(t *testing.T) {
	m := NewDashboardModel(nil, nil, testSession, time.Now())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabComparison, next.(DashboardModel).tab)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabSummary, next.(DashboardModel).tab)
}

func TestBulk_SubmitKeepsRejectedRows(t *testing.T) {
	m := NewBulkModel(nil, testSession, time.Now())
	m.rows = []ingest.DraftRow{{Description: "ok"}, {Description: "bad"}}
	m.state = bulkStateSubmitting

	next, _ := m.Update(bulkResultMsg{outcome: &ingest.Outcome{
		Inserted: 1,
		Rejected: []ingest.Rejection{{Row: 2, Err: ingest.ErrInvalidAmount}},
	}})

	b := next.(BulkModel)
	assert.Equal(t, bulkStateResult, b.state)
	require.Len(t, b.rows, 1)
	assert.Equal(t, "bad", b.rows[0].Description)
	assert.Contains(t, b.View(), "1 transaksi disimpan")
}

func TestBulk_BatchErrorKeepsAllRows(t *testing.T) {
	m := NewBulkModel(nil, testSession, time.Now())
	m.rows = []ingest.DraftRow{{Description: "bad"}}
	m.state = bulkStateSubmitting

	next, _ := m.Update(bulkResultMsg{err: &ingest.BatchError{Rejected: 1, FirstError: "row 1: amount must be positive"}})

	b := next.(BulkModel)
	assert.Len(t, b.rows, 1)
	assert.Contains(t, b.View(), "Tidak ada baris yang valid")
}
