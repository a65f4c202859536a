package tui

import (
	"time"

	"github.com/Veraticus/voiq/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

// loadDashboard resolves the remembered identity and hydrates both charts.
func (m Model) loadDashboard() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

// startEdit runs the fetch that decides between editing and confirming.
func (m Model) startEdit(chart dashboard.Chart) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		outcome, err := ctrl.StartEdit(ctx, chart)
		return editStartedMsg{chart: chart, outcome: outcome, err: err}
	}
}

// submitIdentity stores the email and continues the edit that needed it.
func (m Model) submitIdentity(chart dashboard.Chart, raw string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		outcome, err := ctrl.SubmitIdentity(ctx, chart, raw)
		return identitySubmittedMsg{chart: chart, outcome: outcome, err: err}
	}
}

// save commits the working copy of chart.
func (m Model) save(chart dashboard.Chart) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return savedMsg{chart: chart, err: ctrl.Save(ctx, chart)}
	}
}

// scheduleToastExpiry wakes the program when the visible notice expires so
// the view drops it.
func (m Model) scheduleToastExpiry() tea.Cmd {
	notifier := m.ctrl.Notifier()
	notice, ok := notifier.Current()
	if !ok {
		return nil
	}

	remaining := notifier.TTL() - time.Since(notice.CreatedAt)
	if remaining < 0 {
		remaining = 0
	}
	id := notice.ID
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
