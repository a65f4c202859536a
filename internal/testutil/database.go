// Package testutil provides test utilities shared across packages: an
// isolated, migrated database seeded with metric records.
package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/service"
	"github.com/Veraticus/voiq/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory SQLite database seeded with records.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		records.New("dana@example.com").WithCalls(1, 2, 3, 4, 5, 6, 7).Build(),
//	)
func SetupTestDB(t *testing.T, seed ...*model.MetricRecord) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Records: seed})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Driver         string
	Records        []*model.MetricRecord
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	driver := opts.Driver
	if driver == "" {
		driver = storage.DriverPureGo
	}

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorageWithDriver(driver, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Seed records
	for _, rec := range opts.Records {
		if err := store.UpsertMetrics(ctx, rec); err != nil {
			t.Fatalf("failed to seed metrics for %q: %v", rec.Identity, err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// Record returns the stored row for id, or nil when there is none.
func (db *TestDB) Record(id model.Identity) *model.MetricRecord {
	db.t.Helper()
	rec, err := db.Storage.GetMetrics(context.Background(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		db.t.Fatalf("failed to read metrics for %q: %v", id, err)
	}
	return rec
}

// MustGetRecord returns the stored row for id or fails the test.
func (db *TestDB) MustGetRecord(id model.Identity) *model.MetricRecord {
	db.t.Helper()
	rec := db.Record(id)
	if rec == nil {
		db.t.Fatalf("expected metrics for %q", id)
	}
	return rec
}
