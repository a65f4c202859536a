package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/voiq/internal/cli"
	"github.com/Veraticus/voiq/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// schemaVersioner is implemented by backends with a local schema.
type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (int, error)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has the custom_metrics table
and indexes the dashboard reads and writes. Hosted PostgREST backends own
their schema and are left untouched.`,
		RunE: runMigrate,
	}

	// Flags
	cmd.Flags().Bool("status", false, "Show current migration status after migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()

	slog.Info("Starting database migration",
		"backend", viper.GetString("database.backend"),
		"database", viper.GetString("database.path"))

	// Opening the store runs every pending migration
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	out := cmd.OutOrStdout()
	if status {
		versioner, ok := store.(schemaVersioner)
		if !ok {
			_, err = fmt.Fprintln(out, cli.FormatInfo("This backend has no local schema"))
			return err
		}
		current, err := versioner.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if _, err := fmt.Fprintf(out, "Current version: %d\nLatest version:  %d\n", current, storage.ExpectedSchemaVersion); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed successfully!"))
	return err
}
