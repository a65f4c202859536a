package components

import (
	"strings"

	"github.com/Veraticus/voiq/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel asks a yes/no question. It completes exactly once.
type ConfirmModel struct {
	theme        themes.Theme
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	cursor       int
	width        int
	height       int
	complete     bool
	confirmed    bool
}

// NewConfirmModel creates a confirmation dialog. The cursor starts on the
// cancel option.
func NewConfirmModel(title, message, confirmLabel, cancelLabel string, theme themes.Theme) ConfirmModel {
	return ConfirmModel{
		title:        title,
		message:      message,
		confirmLabel: confirmLabel,
		cancelLabel:  cancelLabel,
		cursor:       1,
		theme:        theme,
	}
}

// NewOverwriteConfirmModel is the prompt shown when saved values exist.
func NewOverwriteConfirmModel(theme themes.Theme) ConfirmModel {
	return NewConfirmModel(
		"Overwrite previous values?",
		"We found values you saved earlier. Load them into the editor?\nThis replaces what the chart shows now.",
		"Yes, overwrite",
		"Cancel",
		theme,
	)
}

// Update handles messages.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	if m.complete {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "tab", "shift+tab", "right", "l":
			m.cursor = 1 - m.cursor

		case "enter", " ":
			m.complete = true
			m.confirmed = m.cursor == 0

		case "y":
			m.complete = true
			m.confirmed = true

		case "n", "esc":
			m.complete = true
			m.confirmed = false
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	title := m.theme.Title.Render(m.title)
	message := m.theme.Normal.Render(m.message)
	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[←→] Choose | [Enter] Select | [y/n] Quick answer | [Esc] Cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		message,
		"",
		m.renderOptions(),
		"",
		help,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

func (m ConfirmModel) renderOptions() string {
	labels := []string{m.confirmLabel, m.cancelLabel}
	buttons := make([]string, 0, len(labels))
	for i, label := range labels {
		style := m.theme.RoundedBox
		if i == m.cursor {
			style = m.theme.FocusedBox.Inherit(m.theme.Bold)
		}
		buttons = append(buttons, style.Render(label))
	}
	return strings.Join(buttons, "  ")
}

// IsComplete returns whether the user answered.
func (m ConfirmModel) IsComplete() bool {
	return m.complete
}

// Confirmed returns the answer. Only meaningful once complete.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Resize updates the component size.
func (m *ConfirmModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
