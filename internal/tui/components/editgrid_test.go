package components

import (
	"testing"

	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/Veraticus/voiq/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditGridModel_StartsOnFirstCell(t *testing.T) {
	m := NewCallsEditGrid(model.DefaultCallMetrics(), themes.Default)

	field, index := m.Focus()
	assert.Equal(t, editor.FieldCalls, field)
	assert.Equal(t, 0, index)

	v, ok := m.Cell(editor.FieldFails, 3)
	require.True(t, ok)
	assert.Equal(t, "21", v)
}

func TestEditGridModel_TypingEmitsFieldEdited(t *testing.T) {
	m := NewCallsEditGrid(model.DefaultCallMetrics(), themes.Default)
	m, _ = m.Update(tuitest.KeyTab())

	var cmd tea.Cmd
	m, cmd = m.Update(tuitest.KeyPress("5"))

	msgs := collect(cmd)
	require.Contains(t, msgs, FieldEditedMsg{Field: editor.FieldCalls, Index: 1, Raw: "2205"})

	v, _ := m.Cell(editor.FieldCalls, 1)
	assert.Equal(t, "2205", v)

	m, cmd = m.Update(tuitest.KeyBackspace())
	assert.Contains(t, collect(cmd), FieldEditedMsg{Field: editor.FieldCalls, Index: 1, Raw: "220"})
}

func TestEditGridModel_Navigation(t *testing.T) {
	m := NewResolutionEditGrid(model.DefaultResolutionMetrics(), themes.Default)

	// Seven resolution cells then the SLA cell.
	for range 7 {
		m, _ = m.Update(tuitest.KeyTab())
	}
	field, index := m.Focus()
	assert.Equal(t, editor.FieldSLA, field)
	assert.Equal(t, 0, index)

	m, _ = m.Update(tuitest.KeyTab())
	field, index = m.Focus()
	assert.Equal(t, editor.FieldResolution, field, "tab wraps to the first cell")
	assert.Equal(t, 0, index)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	field, _ = m.Focus()
	assert.Equal(t, editor.FieldSLA, field, "shift+tab wraps backwards")

	m, _ = m.Update(tuitest.KeyUp())
	field, _ = m.Focus()
	assert.Equal(t, editor.FieldResolution, field)

	for range 4 {
		m, _ = m.Update(tuitest.KeyTab())
	}
	m, _ = m.Update(tuitest.KeyDown())
	field, index = m.Focus()
	assert.Equal(t, editor.FieldSLA, field)
	assert.Equal(t, 0, index, "column clamps to the scalar row")
}

func TestEditGridModel_SaveAndCancel(t *testing.T) {
	m := NewCallsEditGrid(model.DefaultCallMetrics(), themes.Default)

	_, cmd := m.Update(tuitest.KeyEnter())
	assert.Equal(t, []tea.Msg{SaveRequestedMsg{}}, collect(cmd))

	_, cmd = m.Update(tuitest.KeyCtrlS())
	assert.Equal(t, []tea.Msg{SaveRequestedMsg{}}, collect(cmd))

	_, cmd = m.Update(tuitest.KeyEsc())
	assert.Equal(t, []tea.Msg{CancelEditMsg{}}, collect(cmd))
}

func TestEditGridModel_View(t *testing.T) {
	m := NewResolutionEditGrid(model.DefaultResolutionMetrics(), themes.Default)
	m.Resize(100)

	view := m.View()
	assert.Contains(t, view, "Edit resolution data")
	assert.Contains(t, view, "Mon")
	assert.Contains(t, view, "SLA")
	assert.Contains(t, view, "45")
}
