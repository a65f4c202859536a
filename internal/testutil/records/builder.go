// Package records builds metric records for tests with a fluent API.
//
// Example usage:
//
//	rec := records.New("dana@example.com").
//		WithFixture(records.FixtureBusyWeek).
//		WithSLA(30).
//		Build()
package records

import (
	"slices"
	"time"

	"github.com/Veraticus/voiq/internal/model"
)

// Builder accumulates the fields of one record. Fields never set stay
// absent, the same as a row that was saved by only one chart.
type Builder struct {
	record model.MetricRecord
}

// DefaultUpdatedAt stamps records that do not set their own time.
var DefaultUpdatedAt = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

// New starts a record for email.
func New(email string) *Builder {
	return &Builder{record: model.MetricRecord{
		Identity:  model.NormalizeIdentity(email),
		UpdatedAt: DefaultUpdatedAt,
	}}
}

// WithCalls sets the daily call counts.
func (b *Builder) WithCalls(values ...float64) *Builder {
	b.record.Calls = slices.Clone(values)
	return b
}

// WithFails sets the daily failure counts.
func (b *Builder) WithFails(values ...float64) *Builder {
	b.record.Fails = slices.Clone(values)
	return b
}

// WithResolution sets the daily resolution times.
func (b *Builder) WithResolution(values ...float64) *Builder {
	b.record.ResolutionTimes = slices.Clone(values)
	return b
}

// WithSLA sets the resolution target.
func (b *Builder) WithSLA(sla float64) *Builder {
	b.record.SLA = &sla
	return b
}

// WithUpdatedAt stamps the record.
func (b *Builder) WithUpdatedAt(at time.Time) *Builder {
	b.record.UpdatedAt = at
	return b
}

// WithFixture copies every field the fixture defines.
func (b *Builder) WithFixture(f Fixture) *Builder {
	if f.Calls != nil {
		b.WithCalls(f.Calls...)
	}
	if f.Fails != nil {
		b.WithFails(f.Fails...)
	}
	if f.Resolution != nil {
		b.WithResolution(f.Resolution...)
	}
	if f.SLA != nil {
		b.WithSLA(*f.SLA)
	}
	return b
}

// Complete fills every absent field with its default.
func (b *Builder) Complete() *Builder {
	b.record.FillDefaults()
	return b
}

// Build returns a copy of the record.
func (b *Builder) Build() *model.MetricRecord {
	return b.record.Clone()
}
