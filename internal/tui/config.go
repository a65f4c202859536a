package tui

import (
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/Veraticus/voiq/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Controller *dashboard.Controller
	Width      int
	Height     int
	ShowStats  bool
	ShowHelp   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     100,
		Height:    40,
		ShowStats: true,
		ShowHelp:  true,
	}
}

// WithController sets the dashboard controller driving the charts.
func WithController(ctrl *dashboard.Controller) Option {
	return func(c *Config) {
		c.Controller = ctrl
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStats toggles the KPI strip.
func WithStats(enabled bool) Option {
	return func(c *Config) {
		c.ShowStats = enabled
	}
}

// WithHelp toggles the key help footer.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}
