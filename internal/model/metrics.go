// Package model defines the core data types for voiq.
package model

import (
	"slices"
	"time"
)

// DaysPerWeek is the fixed length of every per-day sequence.
const DaysPerWeek = 7

// Weekdays labels per-day positions, Monday first.
var Weekdays = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Built-in defaults shown until a user saves their own values.
var (
	DefaultCalls           = []float64{180, 220, 205, 260, 240, 120, 90}
	DefaultFails           = []float64{14, 18, 9, 21, 17, 4, 2}
	DefaultResolutionTimes = []float64{44, 39, 42, 47, 41, 38, 36}
)

// DefaultSLA is the resolution-time target in seconds.
const DefaultSLA = 45.0

// MetricRecord is the single stored row for an identity. Nil slices and a
// nil SLA mean the field has never been saved.
type MetricRecord struct {
	UpdatedAt       time.Time
	SLA             *float64
	Identity        Identity
	Calls           []float64
	Fails           []float64
	ResolutionTimes []float64
}

// Clone returns a deep copy of the record.
func (r *MetricRecord) Clone() *MetricRecord {
	if r == nil {
		return nil
	}
	out := &MetricRecord{
		Identity:        r.Identity,
		UpdatedAt:       r.UpdatedAt,
		Calls:           slices.Clone(r.Calls),
		Fails:           slices.Clone(r.Fails),
		ResolutionTimes: slices.Clone(r.ResolutionTimes),
	}
	if r.SLA != nil {
		sla := *r.SLA
		out.SLA = &sla
	}
	return out
}

// FillDefaults replaces every absent field with its built-in default.
// Fields that are present are left untouched.
func (r *MetricRecord) FillDefaults() {
	if r.Calls == nil {
		r.Calls = slices.Clone(DefaultCalls)
	}
	if r.Fails == nil {
		r.Fails = slices.Clone(DefaultFails)
	}
	if r.ResolutionTimes == nil {
		r.ResolutionTimes = slices.Clone(DefaultResolutionTimes)
	}
	if r.SLA == nil {
		sla := DefaultSLA
		r.SLA = &sla
	}
}

// CallMetrics is the call volume field group: two parallel per-day sequences.
type CallMetrics struct {
	Calls []float64
	Fails []float64
}

// DefaultCallMetrics returns a fresh copy of the built-in call metrics.
func DefaultCallMetrics() CallMetrics {
	return CallMetrics{
		Calls: slices.Clone(DefaultCalls),
		Fails: slices.Clone(DefaultFails),
	}
}

// Clone returns a deep copy.
func (c CallMetrics) Clone() CallMetrics {
	return CallMetrics{Calls: slices.Clone(c.Calls), Fails: slices.Clone(c.Fails)}
}

// ResolutionMetrics is the resolution time field group: one per-day sequence
// plus the SLA target.
type ResolutionMetrics struct {
	Times []float64
	SLA   float64
}

// DefaultResolutionMetrics returns a fresh copy of the built-in resolution metrics.
func DefaultResolutionMetrics() ResolutionMetrics {
	return ResolutionMetrics{
		Times: slices.Clone(DefaultResolutionTimes),
		SLA:   DefaultSLA,
	}
}

// Clone returns a deep copy.
func (r ResolutionMetrics) Clone() ResolutionMetrics {
	return ResolutionMetrics{Times: slices.Clone(r.Times), SLA: r.SLA}
}

// valueAt returns values[i], or fallback when the sequence is too short.
func valueAt(values []float64, i int, fallback float64) float64 {
	if i < len(values) {
		return values[i]
	}
	return fallback
}
