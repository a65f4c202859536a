package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/model"
)

// GetMetrics retrieves the record stored for an identity.
func (s *SQLiteStorage) GetMetrics(ctx context.Context, id model.Identity) (*model.MetricRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id.String(), "identity"); err != nil {
		return nil, err
	}

	return s.getMetricsTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getMetricsTx(ctx context.Context, q queryable, id model.Identity) (*model.MetricRecord, error) {
	var (
		email      string
		calls      sql.NullString
		fails      sql.NullString
		resolution sql.NullString
		sla        sql.NullFloat64
		updatedAt  string
	)

	err := q.QueryRowContext(ctx, `
		SELECT email, call_metrics_calls, call_metrics_fail, resolution_times,
			target_resolution_sla, updated_at
		FROM custom_metrics
		WHERE email = ?
	`, id.String()).Scan(&email, &calls, &fails, &resolution, &sla, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("metrics for %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	record := &model.MetricRecord{Identity: model.Identity(email)}

	if record.Calls, err = decodeSequence(calls); err != nil {
		return nil, fmt.Errorf("call_metrics_calls: %w", err)
	}
	if record.Fails, err = decodeSequence(fails); err != nil {
		return nil, fmt.Errorf("call_metrics_fail: %w", err)
	}
	if record.ResolutionTimes, err = decodeSequence(resolution); err != nil {
		return nil, fmt.Errorf("resolution_times: %w", err)
	}
	if sla.Valid {
		v := sla.Float64
		record.SLA = &v
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("%w: bad updated_at %q", common.ErrDatabaseCorrupted, updatedAt)
	}

	return record, nil
}

// UpsertMetrics inserts a record or replaces every column of the existing row.
func (s *SQLiteStorage) UpsertMetrics(ctx context.Context, record *model.MetricRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	return s.upsertMetricsTx(ctx, s.db, record)
}

func (s *SQLiteStorage) upsertMetricsTx(ctx context.Context, q queryable, record *model.MetricRecord) error {
	calls, err := encodeSequence(record.Calls)
	if err != nil {
		return err
	}
	fails, err := encodeSequence(record.Fails)
	if err != nil {
		return err
	}
	resolution, err := encodeSequence(record.ResolutionTimes)
	if err != nil {
		return err
	}

	var sla sql.NullFloat64
	if record.SLA != nil {
		sla = sql.NullFloat64{Float64: *record.SLA, Valid: true}
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO custom_metrics (
			email, call_metrics_calls, call_metrics_fail, resolution_times,
			target_resolution_sla, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			call_metrics_calls = excluded.call_metrics_calls,
			call_metrics_fail = excluded.call_metrics_fail,
			resolution_times = excluded.resolution_times,
			target_resolution_sla = excluded.target_resolution_sla,
			updated_at = excluded.updated_at
	`, record.Identity.String(), calls, fails, resolution, sla,
		record.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert metrics: %w", err)
	}

	return nil
}

// ListIdentities returns every stored identity, most recently updated first.
func (s *SQLiteStorage) ListIdentities(ctx context.Context) ([]model.Identity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM custom_metrics ORDER BY updated_at DESC, email
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []model.Identity
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		ids = append(ids, model.Identity(email))
	}

	return ids, rows.Err()
}

func encodeSequence(values []float64) (sql.NullString, error) {
	if values == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode sequence: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeSequence(raw sql.NullString) ([]float64, error) {
	if !raw.Valid {
		return nil, nil
	}
	var values []float64
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}
	return values, nil
}
