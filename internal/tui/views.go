package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("voiq"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading saved metrics..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderCompactView renders the stacked layout for narrow terminals.
func (m Model) renderCompactView() string {
	if overlay, ok := m.renderOverlay(); ok {
		return overlay
	}

	sections := []string{m.renderHeader()}
	if m.config.ShowStats {
		sections = append(sections, m.statCards.View())
	}
	// Only the focused chart fits; tab switches.
	sections = append(sections, m.renderChart(m.focus, m.chartWidth()))

	return m.wrapWithBorder(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderFullView renders both charts side by side.
func (m Model) renderFullView() string {
	if overlay, ok := m.renderOverlay(); ok {
		return overlay
	}

	width := m.chartWidth()
	charts := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderChart(dashboard.ChartCalls, width),
		"  ",
		m.renderChart(dashboard.ChartResolution, width),
	)

	sections := []string{m.renderHeader()}
	if m.config.ShowStats {
		sections = append(sections, m.statCards.View())
	}
	sections = append(sections, charts)

	return m.wrapWithBorder(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderOverlay renders the modal states full screen.
func (m Model) renderOverlay() (string, bool) {
	switch m.state {
	case StateEmailGate:
		return m.withToast(m.emailGate.View()), true
	case StateConfirm:
		return m.withToast(m.confirm.View()), true
	case StateHelp:
		return m.renderHelp(), true
	}
	return "", false
}

// renderHeader renders the title line with the signed-in email.
func (m Model) renderHeader() string {
	left := m.theme.Title.Render("voiq") + " " +
		m.theme.Subtitle.Render("Voice agent performance this week")

	right := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Not signed in")
	if id, ok := m.ctrl.Identity(); ok {
		right = m.theme.StatusInfo.Render(id.String())
	}

	gap := max(m.width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderChart renders chart, or its edit grid while it is being edited.
func (m Model) renderChart(chart dashboard.Chart, width int) string {
	if m.state == StateEditing && chart == m.active {
		m.grid.Resize(width)
		return m.grid.View()
	}

	var view components.ChartModel
	switch chart {
	case dashboard.ChartCalls:
		view = components.NewCallsChart(m.theme, m.ctrl.Calls().Displayed())
	case dashboard.ChartResolution:
		view = components.NewResolutionChart(m.theme, m.ctrl.Resolution().Displayed())
	}
	view.Resize(width)
	view.SetFocused(chart == m.focus)
	view.SetStatus(m.chartStatus(chart))
	return view.View()
}

// chartStatus returns the short state label shown in a chart's title.
func (m Model) chartStatus(chart dashboard.Chart) string {
	switch {
	case m.pending && chart == m.active:
		return "Syncing..."
	case chart == m.focus:
		return "[e] Edit"
	}
	return ""
}

// chartWidth returns the width available to one chart panel.
func (m Model) chartWidth() int {
	if m.width < 100 {
		return max(m.width-4, 20)
	}
	return max((m.width-6)/2, 20)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Keyboard Shortcuts"),
		"",
		m.help.View(m.keymap),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("While editing: Tab/Shift+Tab move between cells, Enter or Ctrl+S saves, Esc cancels."),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Italic(true).Render("Press any key to return"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

// withToast appends the current notice below content.
func (m Model) withToast(content string) string {
	notice, ok := m.ctrl.Notifier().Current()
	toast := components.RenderToast(m.theme, notice, ok)
	if toast == "" {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Center, content, toast)
}

// wrapWithBorder adds the toast, help line and status bar around content.
func (m Model) wrapWithBorder(content string) string {
	parts := []string{content}

	notice, ok := m.ctrl.Notifier().Current()
	if toast := components.RenderToast(m.theme, notice, ok); toast != "" {
		parts = append(parts, toast)
	}
	if m.config.ShowHelp {
		parts = append(parts, m.help.View(m.keymap))
	}
	parts = append(parts, m.renderStatusBar())

	return m.theme.BorderedBox.
		Width(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left string
	switch m.state {
	case StateLoading:
		left = "Loading"
	case StateBrowse:
		left = "Browse"
	case StateEmailGate:
		left = "Sign in"
	case StateConfirm:
		left = "Confirm"
	case StateEditing:
		left = "Editing " + m.active.Title()
	case StateHelp:
		left = "Help"
	}

	center := ""
	if m.lastError != nil {
		center = "last error: " + m.lastError.Error()
	}
	right := fmt.Sprintf("%s  ? Help", m.focus.Title())

	totalWidth := m.width - 4
	spacing := max(totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := fmt.Sprintf("%s%s%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		m.theme.StatusError.Render(center),
		strings.Repeat(" ", rightPad),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)

	return m.theme.Normal.
		Width(max(m.width-2, 0)).
		MaxWidth(max(m.width-2, 0)).
		Render(status)
}
