package components

import (
	"strings"

	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 7

// GridField is one editable row. A single value is a scalar field.
type GridField struct {
	Name   string
	Label  string
	Values []float64
}

// EditGridModel edits a field group as a grid of cells, one per day.
type EditGridModel struct {
	theme  themes.Theme
	title  string
	fields []GridField
	raw    [][]string
	input  textinput.Model
	row    int
	col    int
	width  int
}

// NewEditGridModel creates a grid over fields with the first cell focused.
func NewEditGridModel(title string, fields []GridField, theme themes.Theme) EditGridModel {
	raw := make([][]string, len(fields))
	for i, f := range fields {
		raw[i] = make([]string, len(f.Values))
		for j, v := range f.Values {
			raw[i][j] = model.FormatValue(v)
		}
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 12
	input.Width = cellWidth - 1
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	m := EditGridModel{
		theme:  theme,
		title:  title,
		fields: fields,
		raw:    raw,
		input:  input,
	}
	m.focusCell()
	return m
}

// NewCallsEditGrid edits call volume and failures.
func NewCallsEditGrid(values model.CallMetrics, theme themes.Theme) EditGridModel {
	return NewEditGridModel("Edit call metrics", []GridField{
		{Name: editor.FieldCalls, Label: "Calls", Values: values.Calls},
		{Name: editor.FieldFails, Label: "Fails", Values: values.Fails},
	}, theme)
}

// NewResolutionEditGrid edits resolution times and the SLA target.
func NewResolutionEditGrid(values model.ResolutionMetrics, theme themes.Theme) EditGridModel {
	return NewEditGridModel("Edit resolution data", []GridField{
		{Name: editor.FieldResolution, Label: "Seconds", Values: values.Times},
		{Name: editor.FieldSLA, Label: "SLA", Values: []float64{values.SLA}},
	}, theme)
}

// Update handles messages. Every change to a cell emits FieldEditedMsg.
func (m EditGridModel) Update(msg tea.Msg) (EditGridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "tab":
		m.move(1)
		return m, nil
	case "shift+tab":
		m.move(-1)
		return m, nil
	case "down":
		m.moveRow(1)
		return m, nil
	case "up":
		m.moveRow(-1)
		return m, nil
	case "enter", "ctrl+s":
		return m, func() tea.Msg { return SaveRequestedMsg{} }
	case "esc":
		return m, func() tea.Msg { return CancelEditMsg{} }
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	after := m.input.Value()
	if after == before {
		return m, cmd
	}

	m.raw[m.row][m.col] = after
	edited := FieldEditedMsg{Field: m.fields[m.row].Name, Index: m.col, Raw: after}
	return m, tea.Batch(cmd, func() tea.Msg { return edited })
}

// View renders the grid.
func (m EditGridModel) View() string {
	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, len(f.Label))
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth + 1).Foreground(m.theme.Muted)
	cell := lipgloss.NewStyle().Width(cellWidth)

	header := make([]string, 0, model.DaysPerWeek+1)
	header = append(header, labelStyle.Render(""))
	for _, day := range model.Weekdays {
		header = append(header, cell.Foreground(m.theme.Muted).Render(day))
	}

	lines := []string{
		m.theme.Bold.Render(m.title),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for i, f := range m.fields {
		cols := make([]string, 0, len(f.Values)+1)
		cols = append(cols, labelStyle.Render(f.Label))
		for j := range f.Values {
			if i == m.row && j == m.col {
				cols = append(cols, m.theme.Highlighted.Width(cellWidth).Render(m.input.View()))
				continue
			}
			cols = append(cols, cell.Render(m.raw[i][j]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			strings.Join([]string{"[Tab] Next cell", "[↑↓] Row", "[Enter] Save", "[Esc] Cancel"}, " | ")))

	box := m.theme.FocusedBox
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Focus returns the focused field and index.
func (m EditGridModel) Focus() (string, int) {
	return m.fields[m.row].Name, m.col
}

// Cell returns the text of one cell.
func (m EditGridModel) Cell(field string, index int) (string, bool) {
	for i, f := range m.fields {
		if f.Name == field && index >= 0 && index < len(m.raw[i]) {
			return m.raw[i][index], true
		}
	}
	return "", false
}

// Resize updates the component width.
func (m *EditGridModel) Resize(width int) {
	m.width = width
}

// move steps through cells in reading order, wrapping at the ends.
func (m *EditGridModel) move(step int) {
	total := 0
	for _, r := range m.raw {
		total += len(r)
	}
	if total == 0 {
		return
	}

	pos := m.col
	for i := range m.row {
		pos += len(m.raw[i])
	}
	pos = ((pos+step)%total + total) % total

	for i, r := range m.raw {
		if pos < len(r) {
			m.row, m.col = i, pos
			break
		}
		pos -= len(r)
	}
	m.focusCell()
}

func (m *EditGridModel) moveRow(step int) {
	next := m.row + step
	if next < 0 || next >= len(m.raw) {
		return
	}
	m.row = next
	m.col = min(m.col, len(m.raw[next])-1)
	m.focusCell()
}

func (m *EditGridModel) focusCell() {
	if len(m.raw) == 0 || len(m.raw[m.row]) == 0 {
		return
	}
	m.input.SetValue(m.raw[m.row][m.col])
	m.input.CursorEnd()
}
