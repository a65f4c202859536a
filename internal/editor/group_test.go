package editor

import (
	"testing"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestCallGroup_Present(t *testing.T) {
	g := CallGroup{}
	assert.False(t, g.Present(nil))
	assert.False(t, g.Present(&model.MetricRecord{ResolutionTimes: []float64{1}}))
	assert.False(t, g.Present(&model.MetricRecord{Calls: []float64{}}))
	assert.True(t, g.Present(&model.MetricRecord{Calls: []float64{1}}))
	assert.True(t, g.Present(&model.MetricRecord{Fails: []float64{1}}))
}

func TestCallGroup_Extract(t *testing.T) {
	g := CallGroup{}

	got := g.Extract(&model.MetricRecord{Calls: []float64{5, 5, 5}})
	assert.Equal(t, []float64{5, 5, 5, 0, 0, 0, 0}, got.Calls, "short sequences pad with zero")
	assert.Equal(t, model.DefaultFails, got.Fails, "missing sibling falls back to default")

	assert.Equal(t, model.DefaultCallMetrics(), g.Extract(nil))
}

func TestCallGroup_Set(t *testing.T) {
	g := CallGroup{}
	base := model.CallMetrics{Calls: []float64{1, 2, 3, 4, 5, 6, 7}, Fails: []float64{0, 0, 0, 0, 0, 0, 0}}

	tests := []struct {
		wantErr   error
		name      string
		field     string
		raw       string
		index     int
		wantCalls float64
		wantFails float64
	}{
		{name: "number", field: FieldCalls, index: 1, raw: "9", wantCalls: 9},
		{name: "decimal with spaces", field: FieldCalls, index: 1, raw: " 2.5 ", wantCalls: 2.5},
		{name: "garbage becomes zero", field: FieldCalls, index: 1, raw: "abc", wantCalls: 0},
		{name: "empty becomes zero", field: FieldCalls, index: 1, raw: "", wantCalls: 0},
		{name: "NaN becomes zero", field: FieldCalls, index: 1, raw: "NaN", wantCalls: 0},
		{name: "Inf becomes zero", field: FieldCalls, index: 1, raw: "+Inf", wantCalls: 0},
		{name: "fails field", field: FieldFails, index: 1, raw: "3", wantCalls: 2, wantFails: 3},
		{name: "unknown field", field: "sla", index: 1, raw: "3", wantErr: ErrUnknownField},
		{name: "index too high", field: FieldCalls, index: 7, raw: "3", wantErr: ErrFieldIndex},
		{name: "negative index", field: FieldFails, index: -1, raw: "3", wantErr: ErrFieldIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Set(base, tt.field, tt.index, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, got.Calls[1])
			assert.Equal(t, tt.wantFails, got.Fails[1])
		})
	}

	assert.Equal(t, 2.0, base.Calls[1], "Set must not mutate its input")
}

func TestResolutionGroup_PresentAndExtract(t *testing.T) {
	g := ResolutionGroup{}

	assert.False(t, g.Present(&model.MetricRecord{SLA: ptr(50)}), "SLA alone is not a previous save")
	assert.True(t, g.Present(&model.MetricRecord{ResolutionTimes: []float64{30}}))

	got := g.Extract(&model.MetricRecord{ResolutionTimes: []float64{30, 31}})
	assert.Equal(t, []float64{30, 31, 42, 47, 41, 38, 36}, got.Times, "short sequences pad with per-day defaults")
	assert.Equal(t, model.DefaultSLA, got.SLA)

	got = g.Extract(&model.MetricRecord{ResolutionTimes: []float64{1, 2, 3, 4, 5, 6, 7}, SLA: ptr(30)})
	assert.Equal(t, 30.0, got.SLA)
}

func TestResolutionGroup_Set(t *testing.T) {
	g := ResolutionGroup{}
	base := model.DefaultResolutionMetrics()

	got, err := g.Set(base, FieldSLA, 99, "50")
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.SLA)

	got, err = g.Set(base, FieldSLA, 0, "soon")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSLA, got.SLA, "bad SLA input falls back to the default target")

	got, err = g.Set(base, FieldResolution, 6, "x")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Times[6])

	_, err = g.Set(base, FieldCalls, 0, "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestGroups_ApplyTouchesOnlyOwnFields(t *testing.T) {
	record := &model.MetricRecord{
		Calls:           []float64{1, 1, 1, 1, 1, 1, 1},
		Fails:           []float64{2, 2, 2, 2, 2, 2, 2},
		ResolutionTimes: []float64{3, 3, 3, 3, 3, 3, 3},
		SLA:             ptr(4),
	}

	CallGroup{}.Apply(record, model.CallMetrics{Calls: []float64{9, 9, 9, 9, 9, 9, 9}, Fails: []float64{8, 8, 8, 8, 8, 8, 8}})
	assert.Equal(t, []float64{3, 3, 3, 3, 3, 3, 3}, record.ResolutionTimes)
	assert.Equal(t, 4.0, *record.SLA)

	ResolutionGroup{}.Apply(record, model.ResolutionMetrics{Times: []float64{5, 5, 5, 5, 5, 5, 5}, SLA: 6})
	assert.Equal(t, []float64{9, 9, 9, 9, 9, 9, 9}, record.Calls)
	assert.Equal(t, []float64{8, 8, 8, 8, 8, 8, 8}, record.Fails)
	assert.Equal(t, 6.0, *record.SLA)
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "Mon", want: 0},
		{in: "thursday", want: 3},
		{in: "SUN", want: 6},
		{in: "2", want: 2},
		{in: "7", wantErr: true},
		{in: "xx", wantErr: true},
		{in: "Funday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DayIndex(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFieldIndex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
