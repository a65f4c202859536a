// Package storage provides the data persistence layer for voiq.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/voiq/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid metric record")
	ErrUnknownDriver = errors.New("unknown database driver")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a record before it is written. Sequence lengths
// are not checked; a stored row is written back as it was read.
func validateRecord(record *model.MetricRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.Identity.String(), "identity"); err != nil {
		return err
	}
	if record.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: missing updated_at", ErrInvalidRecord)
	}

	sequences := []struct {
		name   string
		values []float64
	}{
		{"call_metrics_calls", record.Calls},
		{"call_metrics_fail", record.Fails},
		{"resolution_times", record.ResolutionTimes},
	}
	for _, seq := range sequences {
		for i, v := range seq.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidRecord, seq.name, i)
			}
		}
	}

	if record.SLA != nil && (math.IsNaN(*record.SLA) || math.IsInf(*record.SLA, 0)) {
		return fmt.Errorf("%w: target_resolution_sla is not finite", ErrInvalidRecord)
	}

	return nil
}
