package components

import (
	"testing"

	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/Veraticus/voiq/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmModel_Keys(t *testing.T) {
	tests := []struct {
		name          string
		keys          []tea.Msg
		wantComplete  bool
		wantConfirmed bool
	}{
		{
			name:         "no input",
			keys:         nil,
			wantComplete: false,
		},
		{
			name:          "enter on default selects cancel",
			keys:          []tea.Msg{tuitest.KeyEnter()},
			wantComplete:  true,
			wantConfirmed: false,
		},
		{
			name:          "move then enter confirms",
			keys:          []tea.Msg{tuitest.KeyLeft(), tuitest.KeyEnter()},
			wantComplete:  true,
			wantConfirmed: true,
		},
		{
			name:          "tab twice returns to cancel",
			keys:          []tea.Msg{tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyEnter()},
			wantComplete:  true,
			wantConfirmed: false,
		},
		{
			name:          "y confirms",
			keys:          []tea.Msg{tuitest.KeyPress("y")},
			wantComplete:  true,
			wantConfirmed: true,
		},
		{
			name:          "n declines",
			keys:          []tea.Msg{tuitest.KeyPress("n")},
			wantComplete:  true,
			wantConfirmed: false,
		},
		{
			name:          "esc declines",
			keys:          []tea.Msg{tuitest.KeyEsc()},
			wantComplete:  true,
			wantConfirmed: false,
		},
		{
			name:          "answer is final",
			keys:          []tea.Msg{tuitest.KeyPress("n"), tuitest.KeyPress("y")},
			wantComplete:  true,
			wantConfirmed: false,
		},
		{
			name:         "unrelated key ignored",
			keys:         []tea.Msg{tuitest.KeyPress("x")},
			wantComplete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOverwriteConfirmModel(themes.Default)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			assert.Equal(t, tt.wantComplete, m.IsComplete())
			if tt.wantComplete {
				assert.Equal(t, tt.wantConfirmed, m.Confirmed())
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := NewOverwriteConfirmModel(themes.Default)
	m.Resize(100, 30)

	view := m.View()
	assert.Contains(t, view, "Overwrite previous values?")
	assert.Contains(t, view, "Yes, overwrite")
	assert.Contains(t, view, "Cancel")
}

func TestConfirmModel_WindowSize(t *testing.T) {
	m := NewConfirmModel("t", "m", "ok", "no", themes.Default)
	m, _ = m.Update(tuitest.WindowSize(90, 20))
	assert.Equal(t, 90, m.width)
	assert.Equal(t, 20, m.height)
}
