package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/voiq/internal/cli"
	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/spf13/cobra"
)

func metricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Inspect and edit saved metrics",
	}

	cmd.AddCommand(metricsShowCmd())
	cmd.AddCommand(metricsListCmd())
	cmd.AddCommand(metricsSetCmd())

	return cmd
}

func metricsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved metrics for an email",
		Long: `Print the metrics saved for the remembered email (or --email).

Fields that were never saved show their built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: runMetricsShow,
	}

	// Flags
	cmd.Flags().String("email", "", "email to look up (default: remembered email)")
	cmd.Flags().String("format", "text", "output format (text, json)")

	return cmd
}

func metricsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every email with saved metrics",
		Args:  cobra.NoArgs,
		RunE:  runMetricsList,
	}
}

func metricsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set calls|resolution",
		Short: "Edit one chart and save it",
		Long: `Edit one chart the same way the dashboard does, then save it.

Examples:
  voiq metrics set calls --day Mon --value 240
  voiq metrics set calls --field fails --day fri --value 3
  voiq metrics set resolution --week 40,41,39,45,44,38,37
  voiq metrics set resolution --field sla --value 42

When values were saved before you are asked whether to load them first;
--yes answers for you.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"calls", "resolution"},
		RunE:      runMetricsSet,
	}

	// Flags
	cmd.Flags().String("field", "", "field to edit (calls, fails, resolution, sla)")
	cmd.Flags().String("day", "", "weekday (Mon..Sun) or index 0-6")
	cmd.Flags().String("value", "", "new value")
	cmd.Flags().String("week", "", "comma-separated values for every day, Mon first")
	cmd.Flags().String("email", "", "edit this email's metrics without changing the remembered login")
	cmd.Flags().BoolP("yes", "y", false, "load previously saved values without asking")

	return cmd
}

// metricsView is the JSON shape of a saved record.
type metricsView struct {
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
	Email           string      `json:"email"`
	Calls           []float64   `json:"call_metrics_calls"`
	Fails           []float64   `json:"call_metrics_fail"`
	Resolution      []float64   `json:"resolution_times"`
	Summary         summaryView `json:"summary"`
	SLA             float64     `json:"target_resolution_sla"`
	CallsSaved      bool        `json:"calls_saved"`
	ResolutionSaved bool        `json:"resolution_saved"`
}

type summaryView struct {
	Health        string  `json:"health"`
	TotalCalls    float64 `json:"total_calls"`
	TotalFails    float64 `json:"total_fails"`
	FailRate      float64 `json:"fail_rate"`
	AvgResolution float64 `json:"avg_resolution"`
	Healthy       bool    `json:"healthy"`
}

func runMetricsShow(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	email, _ := cmd.Flags().GetString("email")
	ctx := cmd.Context()

	if format != "text" && format != "json" {
		return common.NewUserError(fmt.Sprintf("Unknown format %q (use text or json)", format), common.ErrInvalidConfig)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	id, err := identityFor(a, email)
	if err != nil {
		return err
	}

	record, err := a.store.GetMetrics(ctx, id)
	switch {
	case errors.Is(err, common.ErrNotFound):
		record = nil
	case err != nil:
		return fmt.Errorf("failed to load metrics: %w", err)
	}

	view := buildMetricsView(id, record)
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return printMetrics(out, view)
}

func runMetricsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ids, err := a.store.ListIdentities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved metrics: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		_, err = fmt.Fprintln(out, cli.FormatInfo("No saved metrics yet. Edit a chart to create some."))
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(out, id.String()); err != nil {
			return err
		}
	}
	return nil
}

func runMetricsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	field, _ := flags.GetString("field")
	day, _ := flags.GetString("day")
	value, _ := flags.GetString("value")
	week, _ := flags.GetString("week")
	email, _ := flags.GetString("email")
	yes, _ := flags.GetBool("yes")

	chart, err := dashboard.ParseChart(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Unknown chart %q (use calls or resolution)", args[0]), err)
	}
	edits, err := planEdits(chart, field, day, value, week)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	// An explicit --email edits that user's record for this run only; the
	// remembered login is neither read nor replaced.
	if email != "" {
		_, err = a.ctrl.UseIdentity(ctx, email)
	} else {
		err = a.ctrl.Load(ctx)
	}
	switch {
	case errors.Is(err, editor.ErrEmptyIdentity), errors.Is(err, editor.ErrInvalidIdentity):
		return common.NewUserError("Please enter a valid email address", err)
	case err != nil:
		return fmt.Errorf("failed to load saved metrics: %w", err)
	}

	outcome, err := a.ctrl.StartEdit(ctx, chart)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outcome {
	case dashboard.OutcomeNeedIdentity:
		return common.NewUserError("No email remembered. Run 'voiq login <email>' or pass --email.", errNotLoggedIn)

	case dashboard.OutcomeAwaitConfirmation:
		confirmed := yes
		if !confirmed {
			prompter := cli.NewPrompter(cmd.InOrStdin(), out)
			confirmed, err = prompter.Confirm(ctx, "Overwrite previous values?", false)
			if err != nil && !errors.Is(err, io.EOF) {
				_ = a.ctrl.Decline(chart)
				return err
			}
		}
		if !confirmed {
			if err := a.ctrl.Decline(chart); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, cli.FormatInfo("Kept the current values. Nothing was saved."))
			return err
		}
		if err := a.ctrl.Confirm(chart); err != nil {
			return err
		}

	case dashboard.OutcomeEditing:
	}

	for _, e := range edits {
		if err := a.ctrl.SetField(chart, e.field, e.index, e.raw); err != nil {
			_ = a.ctrl.CancelEdit(chart)
			return common.NewUserError(fmt.Sprintf("Cannot edit %s", e.field), err)
		}
	}

	saveErr := a.ctrl.Save(ctx, chart)
	notice, ok := a.ctrl.Notifier().Current()
	if saveErr != nil {
		slog.Debug("Save failed", "chart", chart.String(), "error", saveErr)
		if ok {
			return common.NewUserError(notice.Message, saveErr)
		}
		return saveErr
	}

	if ok {
		_, err = fmt.Fprintln(out, cli.FormatSuccess(notice.Message))
	}
	return err
}

// fieldEdit is one SetField call.
type fieldEdit struct {
	field string
	raw   string
	index int
}

// planEdits turns the set flags into field edits before anything is fetched.
func planEdits(chart dashboard.Chart, field, day, value, week string) ([]fieldEdit, error) {
	if field == "" {
		field = editor.FieldCalls
		if chart == dashboard.ChartResolution {
			field = editor.FieldResolution
		}
	}

	valid := []string{editor.FieldCalls, editor.FieldFails}
	if chart == dashboard.ChartResolution {
		valid = []string{editor.FieldResolution, editor.FieldSLA}
	}
	if !slices.Contains(valid, field) {
		return nil, common.NewUserError(
			fmt.Sprintf("Field %q does not belong to the %s chart (use %s)", field, chart, strings.Join(valid, " or ")),
			editor.ErrUnknownField)
	}

	switch {
	case week != "":
		if field == editor.FieldSLA {
			return nil, common.NewUserError("--week cannot be used with the sla field", editor.ErrFieldIndex)
		}
		parts := strings.Split(week, ",")
		if len(parts) != model.DaysPerWeek {
			return nil, common.NewUserError(
				fmt.Sprintf("--week needs %d values, got %d", model.DaysPerWeek, len(parts)), editor.ErrFieldIndex)
		}
		edits := make([]fieldEdit, 0, len(parts))
		for i, raw := range parts {
			edits = append(edits, fieldEdit{field: field, index: i, raw: strings.TrimSpace(raw)})
		}
		return edits, nil

	case value == "":
		return nil, common.NewUserError("Nothing to change: pass --value or --week", editor.ErrFieldIndex)

	case field == editor.FieldSLA:
		return []fieldEdit{{field: field, raw: value}}, nil
	}

	if day == "" {
		return nil, common.NewUserError("--day is required with --value", editor.ErrFieldIndex)
	}
	index, err := editor.DayIndex(day)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Unknown day %q", day), err)
	}
	return []fieldEdit{{field: field, index: index, raw: value}}, nil
}

// identityFor returns the explicit email or the remembered one.
func identityFor(a *app, email string) (model.Identity, error) {
	if email != "" {
		id := model.NormalizeIdentity(email)
		if id.IsZero() {
			return "", common.NewUserError("Please enter a valid email address", editor.ErrEmptyIdentity)
		}
		return id, nil
	}

	id, ok, err := editor.NewResolver(a.cache).Resolve()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.NewUserError("No email remembered. Run 'voiq login <email>' or pass --email.", errNotLoggedIn)
	}
	return id, nil
}

func buildMetricsView(id model.Identity, record *model.MetricRecord) metricsView {
	calls := editor.CallGroup{}.Extract(record)
	resolution := editor.ResolutionGroup{}.Extract(record)
	summary := model.Summarize(calls, resolution)

	view := metricsView{
		Email:           id.String(),
		Calls:           calls.Calls,
		Fails:           calls.Fails,
		Resolution:      resolution.Times,
		SLA:             resolution.SLA,
		CallsSaved:      editor.CallGroup{}.Present(record),
		ResolutionSaved: editor.ResolutionGroup{}.Present(record),
		Summary: summaryView{
			Health:        summary.HealthLabel(),
			TotalCalls:    summary.TotalCalls,
			TotalFails:    summary.TotalFails,
			FailRate:      summary.FailRate,
			AvgResolution: summary.AvgResolution,
			Healthy:       summary.Healthy,
		},
	}
	if record != nil && !record.UpdatedAt.IsZero() {
		updated := record.UpdatedAt
		view.UpdatedAt = &updated
	}
	return view
}

func printMetrics(out io.Writer, view metricsView) error {
	if _, err := fmt.Fprintln(out, cli.FormatTitle("Saved metrics for "+view.Email)); err != nil {
		return err
	}
	if !view.CallsSaved && !view.ResolutionSaved {
		if _, err := fmt.Fprintln(out, cli.FormatInfo("Nothing saved yet; showing defaults.")); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Day"),
		cli.TableHeaderStyle.Render("Calls"),
		cli.TableHeaderStyle.Render("Failed"),
		cli.TableHeaderStyle.Render("Resolution (s)")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, day := range model.Weekdays {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			day,
			model.FormatValue(view.Calls[i]),
			model.FormatValue(view.Fails[i]),
			model.FormatValue(view.Resolution[i])); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	calls := model.CallMetrics{Calls: view.Calls, Fails: view.Fails}.Insights()
	resolution := model.ResolutionMetrics{Times: view.Resolution, SLA: view.SLA}.Insights()

	lines := []string{
		"",
		fmt.Sprintf("SLA target:      %ss", model.FormatValue(view.SLA)),
		fmt.Sprintf("Total calls:     %s (%s failed, %.1f%%)",
			model.FormatValue(view.Summary.TotalCalls), model.FormatValue(view.Summary.TotalFails), view.Summary.FailRate),
		fmt.Sprintf("Avg resolution:  %.1fs", view.Summary.AvgResolution),
		fmt.Sprintf("Peak day:        %s (%s calls)", calls.Peak.Day, model.FormatValue(calls.Peak.Value)),
		"Trend:           " + calls.FailTrend(),
	}
	if resolution.InBreach() {
		days := make([]string, 0, len(resolution.Breaching))
		for _, d := range resolution.Breaching {
			days = append(days, d.Day)
		}
		lines = append(lines, cli.ErrorStyle.Render("Above SLA:       "+strings.Join(days, ", ")))
	}
	if view.Summary.Healthy {
		lines = append(lines, cli.SuccessStyle.Render("Health:          "+view.Summary.Health))
	} else {
		lines = append(lines, cli.WarningStyle.Render("Health:          "+view.Summary.Health))
	}
	if view.UpdatedAt != nil {
		lines = append(lines, cli.SubtleStyle.Render("Updated "+view.UpdatedAt.Local().Format(time.RFC1123)))
	}

	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}
