package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallsChart(t *testing.T) {
	c := NewCallsChart(themes.Default, model.DefaultCallMetrics())
	c.Resize(90)

	rows := c.Rows()
	require.Len(t, rows, model.DaysPerWeek)
	assert.Equal(t, "Thu", rows[3].Label)
	assert.Equal(t, 260.0, rows[3].Value)

	view := c.View()
	assert.Contains(t, view, "Call Volume vs Failures")
	assert.Contains(t, view, "Peak: Thu (260 calls)")
	assert.Contains(t, view, "Failures dropping (-2)")
}

func TestNewResolutionChart(t *testing.T) {
	c := NewResolutionChart(themes.Default, model.DefaultResolutionMetrics())

	rows := c.Rows()
	require.Len(t, rows, model.DaysPerWeek)
	assert.Equal(t, themes.Default.SeriesBreach, rows[3].Color, "Thursday is above the SLA")
	assert.Equal(t, themes.Default.SeriesResolution, rows[0].Color)

	view := c.View()
	assert.Contains(t, view, "SLA target 45s")
	assert.Contains(t, view, "Above SLA: Thu")
	assert.Contains(t, view, slaMarker)
}

func TestChartModel_AllWithinSLA(t *testing.T) {
	c := NewResolutionChart(themes.Default, model.ResolutionMetrics{
		Times: []float64{1, 2, 3, 4, 5, 6, 7},
		SLA:   60,
	})
	assert.Contains(t, c.View(), "All days within SLA")
}

func TestChartModel_ZeroValues(t *testing.T) {
	c := NewCallsChart(themes.Default, model.CallMetrics{})
	view := c.View()
	assert.Equal(t, model.DaysPerWeek, strings.Count(view, "0 failed"))
}

func TestChartModel_Status(t *testing.T) {
	c := NewCallsChart(themes.Default, model.DefaultCallMetrics())
	c.SetStatus("Saving…")
	c.SetFocused(true)
	assert.Contains(t, c.View(), "Saving…")
}
