package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

const bannerArt = `████  ███  ████    █████ █████ █████ █     ███ █   █  ████  ████
█   █  █  █        █     █     █     █      █  ██  █ █     █
████   █  █  ██    ████  ████  ████  █      █  █ █ █ █  ██  ███
█   █  █  █   █    █     █     █     █      █  █  ██ █   █     █
████  ███  ████    █     █████ █████ █████ ███ █   █  ████ ████`

const bannerCompact = "B I G   F E E L I N G S"

// RenderBanner returns the title banner, or a spaced-out fallback on
// terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
