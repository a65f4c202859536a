package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const (
	barFull    = "█"
	barEmpty   = "░"
	slaMarker  = "┃"
	minBarSize = 10
)

// BarRow is one labelled bar.
type BarRow struct {
	Label string
	Note  string
	Color lipgloss.Color
	Value float64
}

// ChartModel renders a horizontal bar chart with an optional threshold
// marker. It holds no interactive state.
type ChartModel struct {
	theme    themes.Theme
	marker   *float64
	title    string
	subtitle string
	footer   string
	status   string
	rows     []BarRow
	width    int
	focused  bool
}

// NewCallsChart renders call volume with failures per day.
func NewCallsChart(theme themes.Theme, m model.CallMetrics) ChartModel {
	calls, fails := m.Series()
	rows := make([]BarRow, 0, model.DaysPerWeek)
	for i := range model.DaysPerWeek {
		rows = append(rows, BarRow{
			Label: model.Weekdays[i],
			Value: calls[i],
			Note: fmt.Sprintf("%s calls  %s",
				model.FormatValue(calls[i]),
				lipgloss.NewStyle().Foreground(theme.SeriesFails).Render(model.FormatValue(fails[i])+" failed")),
			Color: theme.SeriesCalls,
		})
	}

	insights := m.Insights()
	footer := fmt.Sprintf("Peak: %s (%s calls)  •  %s",
		insights.Peak.Day, model.FormatValue(insights.Peak.Value), insights.FailTrend())

	return ChartModel{
		theme:    theme,
		title:    "Call Volume vs Failures",
		subtitle: "Weekly calls handled by the voice agent",
		rows:     rows,
		footer:   footer,
	}
}

// NewResolutionChart renders resolution time per day against the SLA.
func NewResolutionChart(theme themes.Theme, m model.ResolutionMetrics) ChartModel {
	series := m.Series()
	rows := make([]BarRow, 0, model.DaysPerWeek)
	for i := range model.DaysPerWeek {
		color := theme.SeriesResolution
		if series[i] > m.SLA {
			color = theme.SeriesBreach
		}
		rows = append(rows, BarRow{
			Label: model.Weekdays[i],
			Value: series[i],
			Note:  model.FormatValue(series[i]) + "s",
			Color: color,
		})
	}

	insights := m.Insights()
	breach := "All days within SLA"
	if insights.InBreach() {
		days := make([]string, 0, len(insights.Breaching))
		for _, d := range insights.Breaching {
			days = append(days, d.Day)
		}
		breach = fmt.Sprintf("Above SLA: %s", strings.Join(days, ", "))
	}
	footer := fmt.Sprintf("Max %s %ss  •  Min %s %ss  •  Avg %ss  •  %s",
		insights.Max.Day, model.FormatValue(insights.Max.Value),
		insights.Min.Day, model.FormatValue(insights.Min.Value),
		model.FormatValue(math.Round(insights.Average*10)/10),
		breach)

	sla := m.SLA
	return ChartModel{
		theme:    theme,
		title:    "Resolution Time vs SLA",
		subtitle: fmt.Sprintf("Seconds to resolve, SLA target %ss", model.FormatValue(sla)),
		rows:     rows,
		marker:   &sla,
		footer:   footer,
	}
}

// SetFocused highlights the chart border.
func (m *ChartModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetStatus sets a short status line such as "Loading…".
func (m *ChartModel) SetStatus(status string) {
	m.status = status
}

// Resize updates the component width.
func (m *ChartModel) Resize(width int) {
	m.width = width
}

// Rows returns the rendered rows.
func (m ChartModel) Rows() []BarRow {
	return m.rows
}

// View renders the chart.
func (m ChartModel) View() string {
	header := m.theme.Bold.Render(m.title)
	if m.status != "" {
		header += "  " + m.theme.StatusPending.Render(m.status)
	}

	sections := []string{
		header,
		m.theme.Subtitle.Render(m.subtitle),
		"",
	}
	sections = append(sections, m.renderBars()...)
	sections = append(sections, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.footer))

	box := m.theme.RoundedBox
	if m.focused {
		box = m.theme.FocusedBox
	}
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m ChartModel) renderBars() []string {
	scale := 0.0
	for _, r := range m.rows {
		scale = math.Max(scale, r.Value)
	}
	if m.marker != nil {
		scale = math.Max(scale, *m.marker)
	}

	barWidth := m.barWidth()
	markerAt := -1
	if m.marker != nil && scale > 0 {
		markerAt = int(math.Round(*m.marker / scale * float64(barWidth-1)))
	}

	lines := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		filled := 0
		if scale > 0 && r.Value > 0 {
			filled = int(math.Round(r.Value / scale * float64(barWidth)))
		}

		var bar strings.Builder
		fill := lipgloss.NewStyle().Foreground(r.Color)
		empty := lipgloss.NewStyle().Foreground(m.theme.Border)
		marker := lipgloss.NewStyle().Foreground(m.theme.Warning)
		for i := range barWidth {
			switch {
			case i == markerAt:
				bar.WriteString(marker.Render(slaMarker))
			case i < filled:
				bar.WriteString(fill.Render(barFull))
			default:
				bar.WriteString(empty.Render(barEmpty))
			}
		}

		lines = append(lines, fmt.Sprintf("%-3s %s %s", r.Label, bar.String(), r.Note))
	}
	return lines
}

func (m ChartModel) barWidth() int {
	// label, spaces, note and borders
	w := m.width - 30
	if w < minBarSize {
		return minBarSize
	}
	return min(w, 48)
}
