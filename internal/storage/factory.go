package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/service"
)

// Backend names accepted by New.
const (
	BackendSQLite       = DriverCGO
	BackendSQLitePureGo = DriverPureGo
	BackendMemory       = "memory"
	BackendPostgREST    = "postgrest"
)

// Config selects and configures a storage backend.
type Config struct {
	Backend   string
	Path      string
	PostgREST PostgRESTConfig
}

// New creates the configured backend and brings its schema up to date.
func New(ctx context.Context, cfg Config) (service.Storage, error) {
	var (
		store service.Storage
		err   error
	)

	switch cfg.Backend {
	case BackendSQLite, BackendSQLitePureGo, "":
		driver := cfg.Backend
		if driver == "" {
			driver = BackendSQLite
		}
		slog.Debug("Using SQLite storage", "driver", driver, "path", cfg.Path)
		store, err = NewSQLiteStorageWithDriver(driver, cfg.Path)

	case BackendMemory:
		slog.Debug("Using in-memory storage")
		store = NewMemoryStorage()

	case BackendPostgREST:
		slog.Debug("Using PostgREST storage", "url", cfg.PostgREST.URL, "table", cfg.PostgREST.Table)
		store, err = NewPostgRESTStorage(cfg.PostgREST)

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q (supported: sqlite3, sqlite, memory, postgrest)",
			common.ErrInvalidConfig, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
