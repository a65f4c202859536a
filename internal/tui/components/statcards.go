package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StatCardsModel renders the KPI strip above the charts.
type StatCardsModel struct {
	theme   themes.Theme
	failBar progress.Model
	slaBar  progress.Model
	summary model.Summary
	sla     float64
	width   int
	compact bool
}

// NewStatCardsModel creates the KPI strip.
func NewStatCardsModel(theme themes.Theme) StatCardsModel {
	failBar := progress.New(progress.WithSolidFill(string(theme.SeriesFails)))
	failBar.ShowPercentage = false
	slaBar := progress.New(progress.WithSolidFill(string(theme.SeriesResolution)))
	slaBar.ShowPercentage = false

	return StatCardsModel{
		theme:   theme,
		failBar: failBar,
		slaBar:  slaBar,
		sla:     model.DefaultSLA,
	}
}

// SetSummary replaces the figures shown.
func (m *StatCardsModel) SetSummary(summary model.Summary, sla float64) {
	m.summary = summary
	m.sla = sla
}

// Summary returns the figures shown.
func (m StatCardsModel) Summary() model.Summary {
	return m.summary
}

// SetCompact sets compact mode.
func (m *StatCardsModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component width.
func (m *StatCardsModel) Resize(width int) {
	m.width = width
	barWidth := max(min(width/4-8, 24), 6)
	m.failBar.Width = barWidth
	m.slaBar.Width = barWidth
}

// View renders the strip.
func (m StatCardsModel) View() string {
	if m.compact {
		return m.renderCompact()
	}

	cards := []string{
		m.card("Total Calls", formatCount(m.summary.TotalCalls), ""),
		m.card("Fail Rate", fmt.Sprintf("%.1f%%", m.summary.FailRate),
			m.failBar.ViewAs(math.Min(m.summary.FailRate/100, 1))),
		m.card("Avg Resolution", fmt.Sprintf("%.1fs", m.summary.AvgResolution),
			m.slaBar.ViewAs(ratio(m.summary.AvgResolution, m.sla))),
		m.card("System Health", m.healthText(), ""),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m StatCardsModel) renderCompact() string {
	stats := fmt.Sprintf(
		"Calls: %s | Fail rate: %.1f%% | Avg resolution: %.1fs | %s",
		formatCount(m.summary.TotalCalls),
		m.summary.FailRate,
		m.summary.AvgResolution,
		m.healthText(),
	)
	return m.theme.Box.Render(stats)
}

func (m StatCardsModel) card(title, value, bar string) string {
	lines := []string{
		m.theme.Subtitle.Render(title),
		m.theme.Bold.Render(value),
	}
	if bar != "" {
		lines = append(lines, bar)
	}

	style := m.theme.RoundedBox
	if m.width > 0 {
		style = style.Width(max(m.width/4-2, 16))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m StatCardsModel) healthText() string {
	if m.summary.Healthy {
		return m.theme.StatusSuccess.Render(m.summary.HealthLabel())
	}
	return m.theme.StatusWarning.Render(m.summary.HealthLabel())
}

func ratio(v, limit float64) float64 {
	if limit <= 0 {
		return 1
	}
	return math.Min(math.Max(v/limit, 0), 1)
}

// formatCount renders a total with thousands separators.
func formatCount(v float64) string {
	s := model.FormatValue(math.Round(v))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
