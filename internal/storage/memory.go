package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/service"
)

// MemoryStorage keeps records in process memory. It backs the "memory"
// backend and doubles as a test store with injectable failures.
type MemoryStorage struct {
	records  map[model.Identity]*model.MetricRecord
	readErr  error
	writeErr error
	reads    int
	writes   int
	mu       sync.Mutex
}

// Ensure we implement the interface.
var _ service.Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[model.Identity]*model.MetricRecord),
	}
}

// GetMetrics returns a copy of the stored record.
func (m *MemoryStorage) GetMetrics(ctx context.Context, id model.Identity) (*model.MetricRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}

	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("metrics for %s: %w", id, common.ErrNotFound)
	}
	return record.Clone(), nil
}

// UpsertMetrics stores a copy of the record, replacing any existing one.
func (m *MemoryStorage) UpsertMetrics(ctx context.Context, record *model.MetricRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}

	m.records[record.Identity] = record.Clone()
	return nil
}

// ListIdentities returns stored identities in lexical order.
func (m *MemoryStorage) ListIdentities(_ context.Context) ([]model.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]model.Identity, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Migrate is a no-op.
func (m *MemoryStorage) Migrate(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}

// Put stores a record directly, bypassing validation.
func (m *MemoryStorage) Put(record *model.MetricRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Identity] = record.Clone()
}

// Record returns a copy of the stored record, or nil.
func (m *MemoryStorage) Record(id model.Identity) *model.MetricRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id].Clone()
}

// FailReads makes every subsequent read return err. Pass nil to clear.
func (m *MemoryStorage) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every subsequent write return err. Pass nil to clear.
func (m *MemoryStorage) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Reads returns the number of GetMetrics calls.
func (m *MemoryStorage) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns the number of UpsertMetrics calls that passed validation.
func (m *MemoryStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
