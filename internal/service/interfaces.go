// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/voiq/internal/model"
)

// MetricsStore is the remote record store. It is keyed by identity and only
// supports whole-row reads and writes.
type MetricsStore interface {
	// GetMetrics returns the record for id, or common.ErrNotFound.
	GetMetrics(ctx context.Context, id model.Identity) (*model.MetricRecord, error)
	// UpsertMetrics inserts the record or replaces the existing row wholesale.
	UpsertMetrics(ctx context.Context, record *model.MetricRecord) error
}

// Storage is a MetricsStore with lifecycle management.
type Storage interface {
	MetricsStore

	// ListIdentities returns every identity that has a stored record.
	ListIdentities(ctx context.Context) ([]model.Identity, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Cache is the local key/value cache that remembers the identity across runs.
type Cache interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
