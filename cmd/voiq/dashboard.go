package main

import (
	"fmt"

	"github.com/Veraticus/voiq/internal/tui"
	"github.com/Veraticus/voiq/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the terminal dashboard with the KPI strip and both charts.

Press e on a chart to edit it. The first edit asks for your email; saved
values are loaded again on the next start.`,
		RunE: runDashboard,
	}

	// Flags
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-stats", false, "hide the KPI strip")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	noStats, _ := cmd.Flags().GetBool("no-stats")
	ctx := cmd.Context()

	// Logs would draw over the alt screen
	restoreLogging, err := setupFileLogging()
	if err != nil {
		return err
	}
	defer restoreLogging()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := tui.Run(ctx,
		tui.WithController(a.ctrl),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithStats(!noStats),
	); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
