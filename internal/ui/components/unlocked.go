package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// Unlocked renders a callout for newly unlocked achievements. It is empty
// when there are none.
func Unlocked(achievements []achievement.Achievement) string {
	if len(achievements) == 0 {
		return ""
	}
	heading := "New achievement!"
	if len(achievements) > 1 {
		heading = "New achievements!"
	}
	lines := []string{lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("🎉 " + heading)}
	for _, a := range achievements {
		lines = append(lines, theme.Body.Render(Glyph(a)+"  "+a.Title)+"  "+theme.Hint.Render(a.Description))
	}
	return theme.Callout.Render(strings.Join(lines, "\n"))
}

// glyphs maps the stored icon names to terminal emoji.
var glyphs = map[string]string{
	"book.fill":                      "📖",
	"books.vertical.fill":            "📚",
	"map.fill":                       "🗺️",
	"crown.fill":                     "👑",
	"heart.fill":                     "❤️",
	"heart.circle.fill":              "💖",
	"checkmark.circle.fill":          "✅",
	"graduationcap.fill":             "🎓",
	"star.fill":                      "⭐",
	"trophy.fill":                    "🏆",
	"checkmark.seal.fill":            "💯",
	"chart.line.uptrend.xyaxis":      "📈",
	"flame.fill":                     "🔥",
	"calendar":                       "📅",
	"calendar.badge.clock":           "🗓️",
	"calendar.badge.exclamationmark": "🌕",
	"shield.fill":                    "🛡️",
	"leaf.fill":                      "🍃",
	"person.2.fill":                  "🤝",
	"brain.head.profile":             "🧠",
	"map.circle.fill":                "🧭",
	"brain":                          "💡",
	"star.circle.fill":               "🌟",
	"chart.bar.fill":                 "📊",
}

// Glyph returns the terminal icon for an achievement, falling back to its
// category icon.
func Glyph(a achievement.Achievement) string {
	if g, ok := glyphs[a.Icon]; ok {
		return g
	}
	return a.Category.Icon()
}
