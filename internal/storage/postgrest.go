package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/service"
)

// DefaultPostgRESTTable is the table the hosted backend reads and writes.
const DefaultPostgRESTTable = "custom_metrics"

// PostgRESTConfig configures a PostgREST (Supabase) backed store.
type PostgRESTConfig struct {
	HTTPClient *http.Client
	URL        string
	APIKey     string
	Table      string
}

// PostgRESTStorage talks to a hosted PostgREST endpoint. The schema is owned
// by the server, so Migrate does nothing.
type PostgRESTStorage struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	table      string
}

// Ensure we implement the interface.
var _ service.Storage = (*PostgRESTStorage)(nil)

// metricRow is the JSON shape of one custom_metrics row.
type metricRow struct {
	SLA             *float64  `json:"target_resolution_sla"`
	Email           string    `json:"email"`
	UpdatedAt       string    `json:"updated_at"`
	Calls           []float64 `json:"call_metrics_calls"`
	Fails           []float64 `json:"call_metrics_fail"`
	ResolutionTimes []float64 `json:"resolution_times"`
}

// NewPostgRESTStorage creates a client for the given endpoint.
func NewPostgRESTStorage(cfg PostgRESTConfig) (*PostgRESTStorage, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("%w: postgrest.url is not set", common.ErrMissingConfig)
	}

	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: postgrest url: %v", common.ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: postgrest url must be http(s): %s", common.ErrInvalidConfig, cfg.URL)
	}

	table := cfg.Table
	if table == "" {
		table = DefaultPostgRESTTable
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &PostgRESTStorage{
		httpClient: client,
		baseURL:    base,
		apiKey:     cfg.APIKey,
		table:      table,
	}, nil
}

// GetMetrics fetches the row for id.
func (p *PostgRESTStorage) GetMetrics(ctx context.Context, id model.Identity) (*model.MetricRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id.String(), "identity"); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("email", "eq."+id.String())
	q.Set("limit", "1")

	var rows []metricRow
	if err := p.do(ctx, http.MethodGet, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("metrics for %s: %w", id, common.ErrNotFound)
	}

	return rows[0].toRecord()
}

// UpsertMetrics posts the full row with merge-duplicates resolution, which
// replaces every column of an existing row.
func (p *PostgRESTStorage) UpsertMetrics(ctx context.Context, record *model.MetricRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	row := metricRow{
		Email:           record.Identity.String(),
		Calls:           record.Calls,
		Fails:           record.Fails,
		ResolutionTimes: record.ResolutionTimes,
		SLA:             record.SLA,
		UpdatedAt:       record.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	q := url.Values{}
	q.Set("on_conflict", "email")

	return p.do(ctx, http.MethodPost, q, row, nil)
}

// ListIdentities returns all stored identities, most recently updated first.
func (p *PostgRESTStorage) ListIdentities(ctx context.Context) ([]model.Identity, error) {
	q := url.Values{}
	q.Set("select", "email")
	q.Set("order", "updated_at.desc")

	var rows []metricRow
	if err := p.do(ctx, http.MethodGet, q, nil, &rows); err != nil {
		return nil, err
	}

	ids := make([]model.Identity, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, model.Identity(row.Email))
	}
	return ids, nil
}

// Migrate is a no-op; the server owns the schema.
func (p *PostgRESTStorage) Migrate(_ context.Context) error {
	slog.Debug("Skipping migrations for hosted backend", "table", p.table)
	return nil
}

// Close releases idle connections.
func (p *PostgRESTStorage) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

func (p *PostgRESTStorage) do(ctx context.Context, method string, query url.Values, body, out any) error {
	u := *p.baseURL
	u.Path = u.Path + "/rest/v1/" + p.table
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: %d - %s", common.ErrRemoteRejected, method, p.table, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (r metricRow) toRecord() (*model.MetricRecord, error) {
	record := &model.MetricRecord{
		Identity:        model.Identity(r.Email),
		Calls:           r.Calls,
		Fails:           r.Fails,
		ResolutionTimes: r.ResolutionTimes,
		SLA:             r.SLA,
	}
	if r.UpdatedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad updated_at %q", common.ErrRemoteRejected, r.UpdatedAt)
		}
		record.UpdatedAt = ts
	}
	return record, nil
}
