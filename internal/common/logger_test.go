package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelDebug, "json"))

	LogError(errors.New("boom"), "Save failed", Fields{"group": "call metrics"})
	LogInfo("Metrics saved", Fields{"identity": "dana@example.com"})
	LogDebug("Hydrated", nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"Save failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"group":"call metrics"`)
	assert.Contains(t, out, `"identity":"dana@example.com"`)
	assert.Contains(t, out, `"level":"DEBUG"`)

	buf.Reset()
	require.NoError(t, SetupLogger(&buf, slog.LevelWarn, "console"))
	LogInfo("hidden", nil)
	assert.Empty(t, buf.String())

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
