package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	FocusedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	Foreground    lipgloss.Color
	Border        lipgloss.Color
	Muted         lipgloss.Color

	// Chart series colors.
	SeriesCalls      lipgloss.Color
	SeriesFails      lipgloss.Color
	SeriesResolution lipgloss.Color
	SeriesBreach     lipgloss.Color
}

func build(t Theme) Theme {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground).
		MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.Muted)
	t.Normal = lipgloss.NewStyle().
		Foreground(t.Foreground)
	t.Bold = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground)
	t.Italic = lipgloss.NewStyle().
		Italic(true).
		Foreground(t.Foreground)
	t.Selected = lipgloss.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.Color("#0b0f0e")).
		Bold(true)
	t.Highlighted = lipgloss.NewStyle().
		Background(t.Border).
		Foreground(t.Foreground)

	t.Box = lipgloss.NewStyle().
		Padding(0, 1)
	t.BorderedBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	t.RoundedBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.FocusedBox = t.RoundedBox.
		BorderForeground(t.Primary)

	t.StatusSuccess = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)
	t.StatusWarning = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)
	t.StatusError = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)
	t.StatusInfo = lipgloss.NewStyle().
		Foreground(t.Info).
		Bold(true)
	t.StatusPending = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)
	return t
}

// Default is the default theme.
var Default = build(Theme{
	Primary:          lipgloss.Color("#34d399"),
	Secondary:        lipgloss.Color("#6ee7b7"),
	Success:          lipgloss.Color("#10b981"),
	Warning:          lipgloss.Color("#f59e0b"),
	Error:            lipgloss.Color("#ef4444"),
	Info:             lipgloss.Color("#38bdf8"),
	Foreground:       lipgloss.Color("#f0fdf4"),
	Border:           lipgloss.Color("#1f3b33"),
	Muted:            lipgloss.Color("#94a3b8"),
	SeriesCalls:      lipgloss.Color("#34d399"),
	SeriesFails:      lipgloss.Color("#f87171"),
	SeriesResolution: lipgloss.Color("#38bdf8"),
	SeriesBreach:     lipgloss.Color("#fbbf24"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(Theme{
	Primary:          lipgloss.Color("#cba6f7"),
	Secondary:        lipgloss.Color("#f5c2e7"),
	Success:          lipgloss.Color("#a6e3a1"),
	Warning:          lipgloss.Color("#f9e2af"),
	Error:            lipgloss.Color("#f38ba8"),
	Info:             lipgloss.Color("#89dceb"),
	Foreground:       lipgloss.Color("#cdd6f4"),
	Border:           lipgloss.Color("#45475a"),
	Muted:            lipgloss.Color("#6c7086"),
	SeriesCalls:      lipgloss.Color("#a6e3a1"),
	SeriesFails:      lipgloss.Color("#f38ba8"),
	SeriesResolution: lipgloss.Color("#89b4fa"),
	SeriesBreach:     lipgloss.Color("#fab387"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
