package editor

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/voiq/internal/model"
)

// Group is one independently editable slice of a MetricRecord. Each chart
// owns exactly one group and never writes fields outside it.
type Group[V any] interface {
	// Name labels the group in logs and errors.
	Name() string
	// Fields lists the editable field names.
	Fields() []string
	// Default returns a fresh copy of the built-in values.
	Default() V
	// Present reports whether the record holds a previous save of this group.
	Present(record *model.MetricRecord) bool
	// Extract reads the group from a record, filling gaps with defaults.
	Extract(record *model.MetricRecord) V
	// Apply writes the group onto record, leaving every other field alone.
	Apply(record *model.MetricRecord, values V)
	// Set returns values with one field replaced by the parsed raw input.
	Set(values V, field string, index int, raw string) (V, error)
	// Clone deep-copies values.
	Clone(values V) V
	// SaveSuccess and SaveError are the notices shown after a save.
	SaveSuccess() string
	SaveError() string
}

// Field names.
const (
	FieldCalls      = "calls"
	FieldFails      = "fails"
	FieldResolution = "resolution"
	FieldSLA        = "sla"
)

// CallGroup owns the call volume and failure sequences.
type CallGroup struct{}

var _ Group[model.CallMetrics] = CallGroup{}

func (CallGroup) Name() string { return "call metrics" }

func (CallGroup) Fields() []string { return []string{FieldCalls, FieldFails} }

func (CallGroup) Default() model.CallMetrics { return model.DefaultCallMetrics() }

// Present is true when either sequence has been saved.
func (CallGroup) Present(record *model.MetricRecord) bool {
	return record != nil && (len(record.Calls) > 0 || len(record.Fails) > 0)
}

// Extract uses the saved sequences, falling back to the default for a
// missing one. Short sequences are padded with zeros.
func (CallGroup) Extract(record *model.MetricRecord) model.CallMetrics {
	if record == nil {
		return model.DefaultCallMetrics()
	}
	calls, fails := record.Calls, record.Fails
	if len(calls) == 0 {
		calls = model.DefaultCalls
	}
	if len(fails) == 0 {
		fails = model.DefaultFails
	}
	return model.CallMetrics{
		Calls: fitSequence(calls, nil),
		Fails: fitSequence(fails, nil),
	}
}

func (CallGroup) Apply(record *model.MetricRecord, values model.CallMetrics) {
	record.Calls = fitSequence(values.Calls, nil)
	record.Fails = fitSequence(values.Fails, nil)
}

func (CallGroup) Set(values model.CallMetrics, field string, index int, raw string) (model.CallMetrics, error) {
	out := values.Clone()
	switch field {
	case FieldCalls:
		seq, err := setAt(out.Calls, index, parseNumber(raw, 0))
		if err != nil {
			return values, err
		}
		out.Calls = seq
	case FieldFails:
		seq, err := setAt(out.Fails, index, parseNumber(raw, 0))
		if err != nil {
			return values, err
		}
		out.Fails = seq
	default:
		return values, fmt.Errorf("%w: %q (want calls or fails)", ErrUnknownField, field)
	}
	return out, nil
}

func (CallGroup) Clone(values model.CallMetrics) model.CallMetrics { return values.Clone() }

func (CallGroup) SaveSuccess() string { return "Call metrics saved" }

func (CallGroup) SaveError() string { return "Error saving call metrics" }

// ResolutionGroup owns the resolution time sequence and the SLA target.
type ResolutionGroup struct{}

var _ Group[model.ResolutionMetrics] = ResolutionGroup{}

func (ResolutionGroup) Name() string { return "resolution data" }

func (ResolutionGroup) Fields() []string { return []string{FieldResolution, FieldSLA} }

func (ResolutionGroup) Default() model.ResolutionMetrics { return model.DefaultResolutionMetrics() }

// Present is true when resolution times have been saved. The SLA alone does
// not count.
func (ResolutionGroup) Present(record *model.MetricRecord) bool {
	return record != nil && len(record.ResolutionTimes) > 0
}

// Extract pads short sequences with the per-day defaults and falls back to
// the default SLA.
func (ResolutionGroup) Extract(record *model.MetricRecord) model.ResolutionMetrics {
	if record == nil || len(record.ResolutionTimes) == 0 {
		out := model.DefaultResolutionMetrics()
		if record != nil && record.SLA != nil {
			out.SLA = *record.SLA
		}
		return out
	}
	out := model.ResolutionMetrics{
		Times: fitSequence(record.ResolutionTimes, model.DefaultResolutionTimes),
		SLA:   model.DefaultSLA,
	}
	if record.SLA != nil {
		out.SLA = *record.SLA
	}
	return out
}

func (ResolutionGroup) Apply(record *model.MetricRecord, values model.ResolutionMetrics) {
	record.ResolutionTimes = fitSequence(values.Times, model.DefaultResolutionTimes)
	sla := values.SLA
	record.SLA = &sla
}

// Set parses a resolution time for one day, or the SLA. The index is
// ignored for the SLA. An unparsable SLA falls back to the default target.
func (ResolutionGroup) Set(values model.ResolutionMetrics, field string, index int, raw string) (model.ResolutionMetrics, error) {
	out := values.Clone()
	switch field {
	case FieldResolution:
		seq, err := setAt(out.Times, index, parseNumber(raw, 0))
		if err != nil {
			return values, err
		}
		out.Times = seq
	case FieldSLA:
		out.SLA = parseNumber(raw, model.DefaultSLA)
	default:
		return values, fmt.Errorf("%w: %q (want resolution or sla)", ErrUnknownField, field)
	}
	return out, nil
}

func (ResolutionGroup) Clone(values model.ResolutionMetrics) model.ResolutionMetrics {
	return values.Clone()
}

func (ResolutionGroup) SaveSuccess() string { return "Resolution data saved" }

func (ResolutionGroup) SaveError() string { return "Error saving resolution data" }

// parseNumber parses user input. Anything that is not a finite number
// becomes fallback.
func parseNumber(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// fitSequence returns a copy of values with exactly DaysPerWeek entries.
// Missing positions come from pad, or zero when pad is nil.
func fitSequence(values, pad []float64) []float64 {
	out := make([]float64, model.DaysPerWeek)
	for i := range model.DaysPerWeek {
		switch {
		case i < len(values):
			out[i] = values[i]
		case i < len(pad):
			out[i] = pad[i]
		}
	}
	return out
}

func setAt(values []float64, index int, v float64) ([]float64, error) {
	if index < 0 || index >= model.DaysPerWeek {
		return nil, fmt.Errorf("%w: %d (want 0-%d)", ErrFieldIndex, index, model.DaysPerWeek-1)
	}
	out := fitSequence(values, nil)
	out[index] = v
	return out, nil
}

// DayIndex resolves a weekday label ("Mon", "tuesday") or a 0-based index.
func DayIndex(day string) (int, error) {
	day = strings.TrimSpace(day)
	if n, err := strconv.Atoi(day); err == nil {
		if n < 0 || n >= model.DaysPerWeek {
			return 0, fmt.Errorf("%w: %d", ErrFieldIndex, n)
		}
		return n, nil
	}
	if len(day) >= 3 {
		prefix := strings.ToLower(day[:3])
		if i := slices.IndexFunc(model.Weekdays[:], func(w string) bool {
			return strings.ToLower(w) == prefix
		}); i >= 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown day %q", ErrFieldIndex, day)
}
