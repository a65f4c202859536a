package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("VOIQ_TEST_DIR", "/srv/voiq")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde alone", in: "~", want: home},
		{name: "tilde prefix", in: "~/data/voiq.db", want: filepath.Join(home, "data", "voiq.db")},
		{name: "env var", in: "$VOIQ_TEST_DIR/voiq.db", want: "/srv/voiq/voiq.db"},
		{name: "absolute", in: "/tmp/voiq.db", want: "/tmp/voiq.db"},
		{name: "tilde in middle untouched", in: "/tmp/~/x", want: "/tmp/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestStateDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	t.Setenv("XDG_CONFIG_HOME", "/etc/cfg")

	assert.Equal(t, "/var/state/voiq", StateDir())
	assert.Equal(t, "/etc/cfg/voiq", ConfigDir())
	assert.Equal(t, "/var/state/voiq/voiq.db", DefaultDatabasePath())
	assert.Equal(t, "/var/state/voiq/cache.yaml", DefaultCachePath())
	assert.Equal(t, "/var/state/voiq/voiq.log", DefaultLogPath())
}

func TestStateDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local", "state", "voiq"), StateDir())
}
