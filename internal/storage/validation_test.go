package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	now := time.Now()
	seven := []float64{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		record  *model.MetricRecord
		wantErr error
		name    string
	}{
		{
			name:   "only identity and timestamp",
			record: &model.MetricRecord{Identity: "a@b.com", UpdatedAt: now},
		},
		{
			name:   "full record",
			record: &model.MetricRecord{Identity: "a@b.com", Calls: seven, Fails: seven, ResolutionTimes: seven, SLA: sla(1), UpdatedAt: now},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "blank identity",
			record:  &model.MetricRecord{Identity: " ", UpdatedAt: now},
			wantErr: ErrEmptyString,
		},
		{
			name:    "missing timestamp",
			record:  &model.MetricRecord{Identity: "a@b.com"},
			wantErr: ErrInvalidRecord,
		},
		{
			name:   "short sequence is written as stored",
			record: &model.MetricRecord{Identity: "a@b.com", Fails: []float64{1}, UpdatedAt: now},
		},
		{
			name:   "empty but present sequence",
			record: &model.MetricRecord{Identity: "a@b.com", ResolutionTimes: []float64{}, UpdatedAt: now},
		},
		{
			name:    "NaN value",
			record:  &model.MetricRecord{Identity: "a@b.com", Calls: []float64{1, 2, 3, math.NaN(), 5, 6, 7}, UpdatedAt: now},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "infinite SLA",
			record:  &model.MetricRecord{Identity: "a@b.com", SLA: sla(math.Inf(1)), UpdatedAt: now},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
