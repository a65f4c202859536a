package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points storage and cache at a temporary directory.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	setDefaults()

	dir := t.TempDir()
	viper.Set("database.backend", storage.BackendSQLitePureGo)
	viper.Set("database.path", filepath.Join(dir, "voiq.db"))
	viper.Set("cache.path", filepath.Join(dir, "cache.yaml"))

	t.Cleanup(func() {
		viper.Reset()
		setDefaults()
	})
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func showJSON(t *testing.T, args ...string) metricsView {
	t.Helper()
	out, err := execute(t, metricsCmd(), "", append([]string{"show", "--format", "json"}, args...)...)
	require.NoError(t, err)

	var view metricsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func TestIdentityCommands(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, whoamiCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	out, err = execute(t, loginCmd(), "", "  Dana@Example.COM ")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as dana@example.com")

	out, err = execute(t, whoamiCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com\n", out)

	out, err = execute(t, logoutCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	out, err = execute(t, whoamiCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	setupTestConfig(t)

	for _, raw := range []string{"   ", "not-an-email"} {
		_, err := execute(t, loginCmd(), "", raw)
		require.Error(t, err)
		assert.Equal(t, "Please enter a valid email address", common.UserMessage(err, ""))
	}
}

func TestMetricsSet_RequiresIdentity(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, metricsCmd(), "", "set", "calls", "--day", "Mon", "--value", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Contains(t, common.UserMessage(err, ""), "voiq login")
}

func TestMetricsSet_FirstSaveFillsDefaults(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, metricsCmd(), "", "set", "calls", "--email", "Dana@Example.com", "--day", "Tue", "--value", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "Call metrics saved")

	view := showJSON(t, "--email", "dana@example.com")
	assert.Equal(t, "dana@example.com", view.Email)
	assert.Equal(t, []float64{180, 300, 205, 260, 240, 120, 90}, view.Calls)
	assert.Equal(t, model.DefaultFails, view.Fails)
	assert.Equal(t, model.DefaultResolutionTimes, view.Resolution)
	assert.InDelta(t, model.DefaultSLA, view.SLA, 0.001)
	assert.True(t, view.CallsSaved)
	assert.True(t, view.ResolutionSaved)
	require.NotNil(t, view.UpdatedAt)
}

func TestMetricsSet_EmailFlagUsesOnlyThatRecord(t *testing.T) {
	setupTestConfig(t)
	_, err := execute(t, loginCmd(), "", "alice@example.com")
	require.NoError(t, err)
	_, err = execute(t, metricsCmd(), "", "set", "calls", "--week", "777,777,777,777,777,777,777")
	require.NoError(t, err)

	_, err = execute(t, metricsCmd(), "", "set", "calls", "--email", "bob@example.com", "--day", "Mon", "--value", "1")
	require.NoError(t, err)

	bob := showJSON(t, "--email", "bob@example.com")
	assert.Equal(t, []float64{1, 220, 205, 260, 240, 120, 90}, bob.Calls)
	assert.Equal(t, model.DefaultFails, bob.Fails)

	alice := showJSON(t)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, []float64{777, 777, 777, 777, 777, 777, 777}, alice.Calls)

	out, err := execute(t, whoamiCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\n", out)
}

func TestMetricsSet_ConfirmOverwrite(t *testing.T) {
	setupTestConfig(t)
	_, err := execute(t, loginCmd(), "", "dana@example.com")
	require.NoError(t, err)
	_, err = execute(t, metricsCmd(), "", "set", "resolution", "--day", "Mon", "--value", "50")
	require.NoError(t, err)

	// Declining leaves the saved row alone.
	out, err := execute(t, metricsCmd(), "n\n", "set", "resolution", "--day", "Mon", "--value", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Overwrite previous values?")
	assert.Contains(t, out, "Nothing was saved")
	assert.InDelta(t, 50, showJSON(t).Resolution[0], 0.001)

	// No answer at all declines as well.
	_, err = execute(t, metricsCmd(), "", "set", "resolution", "--day", "Mon", "--value", "10")
	require.NoError(t, err)
	assert.InDelta(t, 50, showJSON(t).Resolution[0], 0.001)

	out, err = execute(t, metricsCmd(), "y\n", "set", "resolution", "--day", "Tue", "--value", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Resolution data saved")
	view := showJSON(t)
	assert.InDelta(t, 50, view.Resolution[0], 0.001)
	assert.InDelta(t, 12, view.Resolution[1], 0.001)

	out, err = execute(t, metricsCmd(), "", "set", "resolution", "--field", "sla", "--value", "30", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "Overwrite previous values?")
	assert.InDelta(t, 30, showJSON(t).SLA, 0.001)
}

func TestMetricsSet_Week(t *testing.T) {
	setupTestConfig(t)
	_, err := execute(t, loginCmd(), "", "dana@example.com")
	require.NoError(t, err)

	_, err = execute(t, metricsCmd(), "", "set", "calls", "--field", "fails", "--week", "1, 2,3,4,5,6,abc")
	require.NoError(t, err)

	// Unparseable input is coerced to zero.
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 0}, showJSON(t).Fails)
}

func TestMetricsSet_SiblingGroupPreserved(t *testing.T) {
	setupTestConfig(t)
	_, err := execute(t, loginCmd(), "", "dana@example.com")
	require.NoError(t, err)

	_, err = execute(t, metricsCmd(), "", "set", "resolution", "--field", "sla", "--value", "20")
	require.NoError(t, err)
	_, err = execute(t, metricsCmd(), "", "set", "calls", "--day", "Sun", "--value", "1", "--yes")
	require.NoError(t, err)

	view := showJSON(t)
	assert.InDelta(t, 20, view.SLA, 0.001)
	assert.InDelta(t, 1, view.Calls[6], 0.001)
}

func TestMetricsShow(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, metricsCmd(), "", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotLoggedIn)

	out, err := execute(t, metricsCmd(), "", "show", "--email", "nobody@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved metrics for nobody@example.com")
	assert.Contains(t, out, "Nothing saved yet")
	assert.Contains(t, out, "Peak day:        Thu (260 calls)")
	assert.Contains(t, out, "Above SLA:       Thu")

	_, err = execute(t, metricsCmd(), "", "show", "--email", "x@example.com", "--format", "yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestMetricsList(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, metricsCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved metrics yet")

	for _, email := range []string{"b@example.com", "a@example.com"} {
		_, err = execute(t, metricsCmd(), "", "set", "calls", "--email", email, "--day", "Mon", "--value", "1")
		require.NoError(t, err)
	}

	out, err = execute(t, metricsCmd(), "", "list")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com\nb@example.com\n", out)
}

func TestPlanEdits(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		day     string
		value   string
		week    string
		want    []fieldEdit
		chart   dashboard.Chart
		wantErr error
	}{
		{
			name:  "default calls field",
			chart: dashboard.ChartCalls,
			day:   "wed",
			value: "7",
			want:  []fieldEdit{{field: editor.FieldCalls, index: 2, raw: "7"}},
		},
		{
			name:  "default resolution field by index",
			chart: dashboard.ChartResolution,
			day:   "6",
			value: "33",
			want:  []fieldEdit{{field: editor.FieldResolution, index: 6, raw: "33"}},
		},
		{
			name:  "sla ignores day",
			chart: dashboard.ChartResolution,
			field: editor.FieldSLA,
			value: "40",
			want:  []fieldEdit{{field: editor.FieldSLA, raw: "40"}},
		},
		{
			name:    "field from other chart",
			chart:   dashboard.ChartCalls,
			field:   editor.FieldSLA,
			value:   "40",
			wantErr: editor.ErrUnknownField,
		},
		{
			name:    "missing day",
			chart:   dashboard.ChartCalls,
			value:   "1",
			wantErr: editor.ErrFieldIndex,
		},
		{
			name:    "unknown day",
			chart:   dashboard.ChartCalls,
			day:     "someday",
			value:   "1",
			wantErr: editor.ErrFieldIndex,
		},
		{
			name:    "nothing to change",
			chart:   dashboard.ChartCalls,
			day:     "Mon",
			wantErr: editor.ErrFieldIndex,
		},
		{
			name:    "short week",
			chart:   dashboard.ChartCalls,
			week:    "1,2,3",
			wantErr: editor.ErrFieldIndex,
		},
		{
			name:    "week on sla",
			chart:   dashboard.ChartResolution,
			field:   editor.FieldSLA,
			week:    "1,2,3,4,5,6,7",
			wantErr: editor.ErrFieldIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := planEdits(tt.chart, tt.field, tt.day, tt.value, tt.week)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrateStatus(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, migrateCmd(), "", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")
	assert.Contains(t, out, "Latest version:  2")
	assert.Contains(t, out, "completed successfully")
}

func TestMigrateMemoryBackend(t *testing.T) {
	setupTestConfig(t)
	viper.Set("database.backend", storage.BackendMemory)

	out, err := execute(t, migrateCmd(), "", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "no local schema")
}

func TestPostgRESTBackendNeedsURL(t *testing.T) {
	setupTestConfig(t)
	viper.Set("database.backend", storage.BackendPostgREST)

	_, err := execute(t, metricsCmd(), "", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Contains(t, common.UserMessage(err, ""), "postgrest.url")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, versionCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "voiq dev\n", out)
}

func TestEditorOptionsFromConfig(t *testing.T) {
	setupTestConfig(t)
	viper.Set("editor.timeout", "2s")
	viper.Set("editor.retain_on_write_failure", true)

	opts := editorOptions()
	assert.Equal(t, "2s", opts.Timeout.String())
	assert.True(t, opts.RetainOnWriteFailure)
	require.NotNil(t, opts.Clock)
}
