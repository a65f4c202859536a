package model

import (
	"fmt"
	"math"
	"strconv"
)

// HealthyFailRate is the failure percentage below which the agent counts as healthy.
const HealthyFailRate = 8.0

// DayValue pairs a weekday label with a value.
type DayValue struct {
	Day   string
	Value float64
}

// CallInsights summarizes the call volume chart.
type CallInsights struct {
	Peak      DayValue
	FailDelta float64
}

// FailTrend describes the failure change between the last two days.
func (c CallInsights) FailTrend() string {
	switch {
	case c.FailDelta < 0:
		return fmt.Sprintf("Failures dropping (-%s)", FormatValue(math.Abs(c.FailDelta)))
	case c.FailDelta > 0:
		return fmt.Sprintf("Failures rising (+%s)", FormatValue(c.FailDelta))
	default:
		return "Failures unchanged"
	}
}

// Series returns calls and failures per weekday, padding short sequences with zero.
func (c CallMetrics) Series() (calls, fails [DaysPerWeek]float64) {
	for i := range DaysPerWeek {
		calls[i] = valueAt(c.Calls, i, 0)
		fails[i] = valueAt(c.Fails, i, 0)
	}
	return calls, fails
}

// Insights computes the peak call day and the latest failure delta.
func (c CallMetrics) Insights() CallInsights {
	calls, fails := c.Series()

	peak := DayValue{Day: Weekdays[0], Value: calls[0]}
	for i := 1; i < DaysPerWeek; i++ {
		if calls[i] > peak.Value {
			peak = DayValue{Day: Weekdays[i], Value: calls[i]}
		}
	}

	return CallInsights{
		Peak:      peak,
		FailDelta: fails[DaysPerWeek-1] - fails[DaysPerWeek-2],
	}
}

// ResolutionInsights summarizes the resolution time chart.
type ResolutionInsights struct {
	Breaching []DayValue
	Max       DayValue
	Min       DayValue
	Average   float64
}

// InBreach reports whether any day exceeded the SLA.
func (r ResolutionInsights) InBreach() bool {
	return len(r.Breaching) > 0
}

// Series returns resolution times per weekday. Missing positions fall back
// to the built-in default for that day.
func (r ResolutionMetrics) Series() [DaysPerWeek]float64 {
	var out [DaysPerWeek]float64
	for i := range DaysPerWeek {
		out[i] = valueAt(r.Times, i, DefaultResolutionTimes[i])
	}
	return out
}

// Insights computes the slowest and fastest days, the weekly average and the
// days that breached the SLA.
func (r ResolutionMetrics) Insights() ResolutionInsights {
	values := r.Series()

	out := ResolutionInsights{
		Max: DayValue{Day: Weekdays[0], Value: values[0]},
		Min: DayValue{Day: Weekdays[0], Value: values[0]},
	}

	var sum float64
	for i, v := range values {
		sum += v
		if v > out.Max.Value {
			out.Max = DayValue{Day: Weekdays[i], Value: v}
		}
		if v < out.Min.Value {
			out.Min = DayValue{Day: Weekdays[i], Value: v}
		}
		if v > r.SLA {
			out.Breaching = append(out.Breaching, DayValue{Day: Weekdays[i], Value: v})
		}
	}
	out.Average = sum / DaysPerWeek

	return out
}

// Summary holds the KPI strip figures.
type Summary struct {
	TotalCalls    float64
	TotalFails    float64
	FailRate      float64
	AvgResolution float64
	Healthy       bool
}

// HealthLabel returns the text shown on the health card.
func (s Summary) HealthLabel() string {
	if s.Healthy {
		return "Healthy"
	}
	return "Needs Attention"
}

// Summarize computes the KPI strip from the displayed chart values.
func Summarize(calls CallMetrics, resolution ResolutionMetrics) Summary {
	c, f := calls.Series()
	res := resolution.Series()

	var s Summary
	var resSum float64
	for i := range DaysPerWeek {
		s.TotalCalls += c[i]
		s.TotalFails += f[i]
		resSum += res[i]
	}
	if s.TotalCalls > 0 {
		s.FailRate = s.TotalFails / s.TotalCalls * 100
	}
	s.AvgResolution = resSum / DaysPerWeek
	s.Healthy = s.FailRate < HealthyFailRate && s.AvgResolution < resolution.SLA

	return s
}

// FormatValue renders a metric value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
