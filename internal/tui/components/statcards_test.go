package components

import (
	"testing"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/notify"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestStatCardsModel_View(t *testing.T) {
	m := NewStatCardsModel(themes.Default)
	m.Resize(120)
	summary := model.Summarize(model.DefaultCallMetrics(), model.DefaultResolutionMetrics())
	m.SetSummary(summary, model.DefaultSLA)

	view := m.View()
	assert.Contains(t, view, "Total Calls")
	assert.Contains(t, view, "1,315")
	assert.Contains(t, view, "6.5%")
	assert.Contains(t, view, "41.0s")
	assert.Contains(t, view, "Healthy")
	assert.Equal(t, summary, m.Summary())
}

func TestStatCardsModel_Compact(t *testing.T) {
	m := NewStatCardsModel(themes.Default)
	m.SetCompact(true)
	m.SetSummary(model.Summary{TotalCalls: 10, TotalFails: 5, FailRate: 50, AvgResolution: 60}, 45)

	view := m.View()
	assert.Contains(t, view, "Fail rate: 50.0%")
	assert.Contains(t, view, "Needs Attention")
}

func TestFormatCount(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1315:    "1,315",
		1234567: "1,234,567",
		-4200:   "-4,200",
		12.6:    "13",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatCount(in), "formatCount(%v)", in)
	}
}

func TestRenderToast(t *testing.T) {
	assert.Empty(t, RenderToast(themes.Default, notify.Notice{Message: "x"}, false))

	ok := RenderToast(themes.Default, notify.Notice{Message: "Call metrics saved", Kind: notify.KindSuccess}, true)
	assert.Contains(t, ok, "✓ Call metrics saved")

	bad := RenderToast(themes.Default, notify.Notice{Message: "Error saving call metrics", Kind: notify.KindError}, true)
	assert.Contains(t, bad, "✗ Error saving call metrics")
}
