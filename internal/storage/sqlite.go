package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/voiq/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo)
	_ "modernc.org/sqlite"          // SQLite driver (pure Go)
)

// SQLite driver names accepted by NewSQLiteStorageWithDriver.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	driver string
}

// Ensure we implement the interface.
var _ service.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage creates a new SQLite storage instance using the cgo driver.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return NewSQLiteStorageWithDriver(DriverCGO, dbPath)
}

// NewSQLiteStorageWithDriver creates a new SQLite storage instance using the
// named database/sql driver.
func NewSQLiteStorageWithDriver(driver, dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn, err := buildDSN(driver, dbPath)
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if dbPath != memoryPath {
		if mkErr := os.MkdirAll(filepath.Dir(dbPath), 0750); mkErr != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
		}
	}

	// Open database
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		driver: driver,
	}, nil
}

// buildDSN adds WAL and busy-timeout settings in each driver's own syntax.
func buildDSN(driver, dbPath string) (string, error) {
	var params []string
	switch driver {
	case DriverCGO:
		params = append(params, "_busy_timeout=5000")
		if dbPath != memoryPath {
			params = append(params, "_journal_mode=WAL")
		}
	case DriverPureGo:
		params = append(params, "_pragma=busy_timeout(5000)")
		if dbPath != memoryPath {
			params = append(params, "_pragma=journal_mode(WAL)")
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	return dbPath + "?" + strings.Join(params, "&"), nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Driver returns the database/sql driver name in use.
func (s *SQLiteStorage) Driver() string {
	return s.driver
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
