package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/voiq/internal/cache"
	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/config"
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/notify"
	"github.com/Veraticus/voiq/internal/service"
	"github.com/Veraticus/voiq/internal/storage"
	"github.com/spf13/viper"
)

// setDefaults registers the default value of every config key.
func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("database.backend", storage.BackendSQLite)
	viper.SetDefault("postgrest.table", storage.DefaultPostgRESTTable)
	viper.SetDefault("editor.timeout", editor.DefaultTimeout)
	viper.SetDefault("editor.retain_on_write_failure", false)
	viper.SetDefault("notify.ttl", notify.DefaultTTL)
	viper.SetDefault("tui.theme", "default")
}

// initStorage opens the configured backend with proper path expansion and
// runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	cfg := storage.Config{
		Backend: viper.GetString("database.backend"),
		// Expand tilde and environment variables
		Path: config.ExpandPath(dbPath),
		PostgREST: storage.PostgRESTConfig{
			URL:    viper.GetString("postgrest.url"),
			APIKey: viper.GetString("postgrest.api_key"),
			Table:  viper.GetString("postgrest.table"),
		},
	}

	store, err := storage.New(ctx, cfg)
	if errors.Is(err, common.ErrMissingConfig) {
		return nil, common.NewUserError("Set postgrest.url (or VOIQ_POSTGREST_URL) to use the postgrest backend", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// initCache opens the local file that remembers the identity.
func initCache() (*cache.FileCache, error) {
	path := viper.GetString("cache.path")
	if path == "" {
		path = config.DefaultCachePath()
	}
	return cache.OpenFileCache(config.ExpandPath(path))
}

// editorOptions reads the editor settings.
func editorOptions() editor.Options {
	opts := editor.DefaultOptions()
	opts.Timeout = viper.GetDuration("editor.timeout")
	opts.RetainOnWriteFailure = viper.GetBool("editor.retain_on_write_failure")
	return opts
}

// app bundles the collaborators every metrics command needs.
type app struct {
	store service.Storage
	cache *cache.FileCache
	ctrl  *dashboard.Controller
}

// newApp wires storage, cache, notifier and the dashboard controller.
func newApp(ctx context.Context) (*app, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	c, err := initCache()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	notifier := notify.New(notify.WithTTL(viper.GetDuration("notify.ttl")))

	return &app{
		store: store,
		cache: c,
		ctrl:  dashboard.New(store, c, notifier, editorOptions()),
	}, nil
}

// Close releases the notifier and storage.
func (a *app) Close() error {
	a.ctrl.Notifier().Close()
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
		return err
	}
	return nil
}

// errNotLoggedIn is returned when a command needs an identity and none is
// remembered.
var errNotLoggedIn = errors.New("no email remembered")
