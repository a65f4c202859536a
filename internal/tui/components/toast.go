package components

import (
	"github.com/Veraticus/voiq/internal/notify"
	"github.com/Veraticus/voiq/internal/tui/themes"
)

// RenderToast renders a notice, or nothing when none is visible.
func RenderToast(theme themes.Theme, notice notify.Notice, visible bool) string {
	if !visible {
		return ""
	}

	style := theme.RoundedBox
	icon := "✓"
	switch notice.Kind {
	case notify.KindError:
		style = style.BorderForeground(theme.Error).Foreground(theme.Error)
		icon = "✗"
	default:
		style = style.BorderForeground(theme.Success).Foreground(theme.Success)
	}
	return style.Render(icon + " " + notice.Message)
}
