package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/tui/components"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateLoading State = iota
	StateBrowse
	StateEmailGate
	StateConfirm
	StateEditing
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	lastError error
	ctrl      *dashboard.Controller
	emailGate components.EmailGateModel
	confirm   components.ConfirmModel
	grid      components.EditGridModel
	statCards components.StatCardsModel
	help      help.Model
	keymap    KeyMap
	config    Config
	height    int
	width     int
	focus     dashboard.Chart
	active    dashboard.Chart
	state     State
	pending   bool
	quitting  bool
	ready     bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	h := help.New()
	h.ShortSeparator = "  •  "

	m := Model{
		ctx:       ctx,
		state:     StateLoading,
		focus:     dashboard.ChartCalls,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		theme:     cfg.Theme,
		ctrl:      cfg.Controller,
		help:      h,
		statCards: components.NewStatCardsModel(cfg.Theme),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.refreshSummary()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadDashboard(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle global messages
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keymap.ClearScreen) {
			return m, tea.ClearScreen
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case loadedMsg:
		m.ready = true
		m.state = StateBrowse
		m.refreshSummary()
		if msg.err != nil {
			m.lastError = msg.err
			common.LogError(msg.err, "Failed to load saved metrics", nil)
		}
		return m, m.scheduleToastExpiry()

	case editStartedMsg:
		m.pending = false
		return m.handleEditStarted(msg.chart, msg.outcome, msg.err)

	case identitySubmittedMsg:
		m.pending = false
		return m.handleIdentitySubmitted(msg)

	case savedMsg:
		m.pending = false
		return m.handleSaved(msg)

	case toastExpiredMsg:
		m.ctrl.Notifier().Expire(msg.id)
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		common.LogError(msg.err, msg.context, nil)
		return m, nil
	}

	// Delegate to active component based on state
	switch m.state {
	case StateLoading:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case StateBrowse:
		if msg, ok := msg.(tea.KeyMsg); ok {
			cmds = append(cmds, m.handleBrowseKeys(msg))
		}

	case StateHelp:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state = StateBrowse
			m.help.ShowAll = false
		}

	case StateEmailGate:
		newGate, cmd := m.emailGate.Update(msg)
		m.emailGate = newGate
		cmds = append(cmds, cmd)

		switch {
		case newGate.IsCancelled():
			m.state = StateBrowse
		case newGate.IsSubmitted() && !m.pending:
			m.pending = true
			cmds = append(cmds, m.submitIdentity(m.active, newGate.Value()))
		}

	case StateConfirm:
		newConfirm, cmd := m.confirm.Update(msg)
		m.confirm = newConfirm
		cmds = append(cmds, cmd)

		if newConfirm.IsComplete() {
			cmds = append(cmds, m.resolveConfirmation(newConfirm.Confirmed()))
		}

	case StateEditing:
		cmds = append(cmds, m.updateEditing(msg))
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return m.renderLoading()
	}

	// Responsive layout based on terminal size
	if m.width < 100 {
		return m.renderCompactView()
	}

	return m.renderFullView()
}

// handleBrowseKeys handles keys on the dashboard itself.
func (m *Model) handleBrowseKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		m.help.ShowAll = true
	case key.Matches(msg, m.keymap.NextChart):
		m.focus = nextChart(m.focus, 1)
	case key.Matches(msg, m.keymap.PrevChart):
		m.focus = nextChart(m.focus, -1)
	case key.Matches(msg, m.keymap.Edit):
		if m.pending || m.ctrl.Busy() {
			return nil
		}
		m.pending = true
		m.active = m.focus
		return m.startEdit(m.focus)
	case key.Matches(msg, m.keymap.Reload):
		if m.pending || m.ctrl.Busy() {
			return nil
		}
		return m.loadDashboard()
	case key.Matches(msg, m.keymap.Logout):
		if err := m.ctrl.Logout(); err != nil {
			m.lastError = err
			m.ctrl.Notifier().Error(common.UserMessage(err, "Could not forget your email"))
		} else {
			m.ctrl.Notifier().Success("Signed out")
		}
		m.refreshSummary()
		return m.scheduleToastExpiry()
	}
	return nil
}

// handleEditStarted routes the outcome of an edit request.
func (m Model) handleEditStarted(chart dashboard.Chart, outcome dashboard.Outcome, err error) (tea.Model, tea.Cmd) {
	m.active = chart
	if err != nil {
		m.lastError = err
		m.state = StateBrowse
		slog.Warn("Could not start editing", "chart", chart.String(), "error", err)
		return m, m.scheduleToastExpiry()
	}

	switch outcome {
	case dashboard.OutcomeNeedIdentity:
		m.emailGate = components.NewEmailGateModel(m.theme)
		m.emailGate.Resize(m.width, m.height)
		m.state = StateEmailGate
	case dashboard.OutcomeAwaitConfirmation:
		m.confirm = components.NewOverwriteConfirmModel(m.theme)
		m.confirm.Resize(m.width, m.height)
		m.state = StateConfirm
	case dashboard.OutcomeEditing:
		m.openEditGrid()
	}
	return m, nil
}

// handleIdentitySubmitted reopens the prompt on rejected input, otherwise
// continues the edit that asked for the email.
func (m Model) handleIdentitySubmitted(msg identitySubmittedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, editor.ErrEmptyIdentity) || errors.Is(msg.err, editor.ErrInvalidIdentity) {
		m.emailGate.Reopen(identityErrorText(msg.err))
		m.state = StateEmailGate
		return m, nil
	}
	if msg.err == nil {
		m.refreshSummary()
	}
	return m.handleEditStarted(msg.chart, msg.outcome, msg.err)
}

// handleSaved leaves the edit grid unless the editor kept the working copy.
func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastError = msg.err
	}
	if m.ctrl.Editing(msg.chart) {
		m.state = StateEditing
	} else {
		m.state = StateBrowse
	}
	m.refreshSummary()
	return m, m.scheduleToastExpiry()
}

// resolveConfirmation answers the overwrite prompt.
func (m *Model) resolveConfirmation(confirmed bool) tea.Cmd {
	if !confirmed {
		if err := m.ctrl.Decline(m.active); err != nil {
			m.lastError = err
		}
		m.state = StateBrowse
		return nil
	}

	if err := m.ctrl.Confirm(m.active); err != nil {
		m.lastError = err
		m.state = StateBrowse
		return func() tea.Msg {
			return errorMsg{err: err, context: "Failed to confirm overwrite"}
		}
	}
	m.openEditGrid()
	return nil
}

// updateEditing forwards input to the grid and applies what it reports.
func (m *Model) updateEditing(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case components.FieldEditedMsg:
		if err := m.ctrl.SetField(m.active, msg.Field, msg.Index, msg.Raw); err != nil {
			m.lastError = err
			slog.Debug("Field edit rejected", "field", msg.Field, "index", msg.Index, "error", err)
		}
		return nil

	case components.SaveRequestedMsg:
		if m.pending {
			return nil
		}
		m.pending = true
		return m.save(m.active)

	case components.CancelEditMsg:
		if err := m.ctrl.CancelEdit(m.active); err != nil {
			m.lastError = err
		}
		m.state = StateBrowse
		return nil
	}

	if m.pending {
		return nil
	}
	newGrid, cmd := m.grid.Update(msg)
	m.grid = newGrid
	return cmd
}

// openEditGrid seeds the grid from the active chart's working copy.
func (m *Model) openEditGrid() {
	switch m.active {
	case dashboard.ChartCalls:
		values, _ := m.ctrl.Calls().Working()
		m.grid = components.NewCallsEditGrid(values, m.theme)
	case dashboard.ChartResolution:
		values, _ := m.ctrl.Resolution().Working()
		m.grid = components.NewResolutionEditGrid(values, m.theme)
	}
	m.grid.Resize(m.chartWidth())
	m.state = StateEditing
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	m.statCards.Resize(m.width - 2)
	m.statCards.SetCompact(m.width < 100)
	m.emailGate.Resize(m.width, m.height)
	m.confirm.Resize(m.width, m.height)
	m.grid.Resize(m.chartWidth())
	m.help.Width = m.width
}

// refreshSummary recomputes the KPI strip from the displayed values.
func (m *Model) refreshSummary() {
	m.statCards.SetSummary(m.ctrl.Summary(), m.ctrl.Resolution().Displayed().SLA)
}

func nextChart(c dashboard.Chart, step int) dashboard.Chart {
	n := len(dashboard.Charts)
	idx := 0
	for i, chart := range dashboard.Charts {
		if chart == c {
			idx = i
			break
		}
	}
	return dashboard.Charts[((idx+step)%n+n)%n]
}

func identityErrorText(err error) string {
	if errors.Is(err, editor.ErrEmptyIdentity) {
		return "Please enter your email"
	}
	return common.UserMessage(err, "That doesn't look like an email address")
}
