package components

import (
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EmailGateModel collects the email used to key saved metrics.
type EmailGateModel struct {
	theme     themes.Theme
	errText   string
	input     textinput.Model
	width     int
	height    int
	submitted bool
	cancelled bool
}

// NewEmailGateModel creates a focused email prompt.
func NewEmailGateModel(theme themes.Theme) EmailGateModel {
	input := textinput.New()
	input.Placeholder = "you@company.com"
	input.CharLimit = 254
	input.Width = 36
	input.Prompt = "✉ "
	input.Focus()

	return EmailGateModel{
		theme: theme,
		input: input,
	}
}

// Update handles messages.
func (m EmailGateModel) Update(msg tea.Msg) (EmailGateModel, tea.Cmd) {
	if m.submitted || m.cancelled {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.input.Value() == "" {
				m.errText = "Please enter your email"
				return m, nil
			}
			m.submitted = true
			return m, nil
		case tea.KeyEsc:
			m.cancelled = true
			return m, nil
		}
		m.errText = ""

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m EmailGateModel) View() string {
	sections := []string{
		m.theme.Title.Render("Enter your email to customize"),
		m.theme.Subtitle.Render("Your edits are saved against this address so they\nload again next time."),
		"",
		m.input.View(),
	}
	if m.errText != "" {
		sections = append(sections, "", m.theme.StatusError.Render(m.errText))
	}
	sections = append(sections, "",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Enter] Continue | [Esc] Cancel"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
	)
}

// Reopen shows the prompt again with an error after a rejected submission.
func (m *EmailGateModel) Reopen(errText string) {
	m.submitted = false
	m.cancelled = false
	m.errText = errText
	m.input.Focus()
}

// IsSubmitted reports whether the user pressed enter on a non-empty value.
func (m EmailGateModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled reports whether the user dismissed the prompt.
func (m EmailGateModel) IsCancelled() bool {
	return m.cancelled
}

// Value returns the raw input.
func (m EmailGateModel) Value() string {
	return m.input.Value()
}

// Error returns the validation message currently shown.
func (m EmailGateModel) Error() string {
	return m.errText
}

// Resize updates the component size.
func (m *EmailGateModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
