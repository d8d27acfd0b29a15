// Package achievements shows a child's badges grouped by category.
package achievements

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// AchievementsScreen lists every achievement with its progress. Left and
// right switch category.
type AchievementsScreen struct {
	child      child.Child
	all        []achievement.Achievement
	byCategory map[achievement.Category][]achievement.Achievement
	summary    achievement.Summary
	tab        int
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New loads c's achievements. Loading re-evaluates them, so anything earned
// offline unlocks here.
func New(svc *services.Services, c child.Child) *AchievementsScreen {
	all := svc.Achievements.Get(context.Background(), c.ID)
	return &AchievementsScreen{
		child:      c,
		all:        all,
		byCategory: achievement.ByCategory(all),
		summary:    achievement.Summarize(all),
	}
}

func (a *AchievementsScreen) Init() tea.Cmd {
	return nil
}

func (a *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		n := len(achievement.Categories())
		switch kmsg.String() {
		case "right", "l", "tab":
			a.tab = (a.tab + 1) % n
		case "left", "h", "shift+tab":
			a.tab = (a.tab + n - 1) % n
		}
	}
	return a, nil
}

func (a *AchievementsScreen) category() achievement.Category {
	return achievement.Categories()[a.tab]
}

func (a *AchievementsScreen) View(width, height int) string {
	col := layout.Column(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("%s's badges", a.child.Name)) + "  ")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d unlocked", a.summary.Unlocked, a.summary.Total)) + "\n\n")
	b.WriteString(a.tabs() + "\n\n")

	for _, ach := range a.byCategory[a.category()] {
		b.WriteString(row(ach, col) + "\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (a *AchievementsScreen) tabs() string {
	var parts []string
	for i, c := range achievement.Categories() {
		label := c.Icon() + " " + c.DisplayName()
		if i == a.tab {
			parts = append(parts, theme.Selected.Underline(true).Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

func row(a achievement.Achievement, width int) string {
	title := components.Glyph(a) + "  " + a.Title
	if a.IsUnlocked {
		title = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(title + "  ✓")
	} else {
		title = theme.Body.Render(title)
	}
	desc := theme.Hint.Render(a.Description)

	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", min(a.CurrentProgress, a.Requirement), a.Requirement),
		a.ProgressPercentage()/100, false, min(width, 40))
	if a.IsUnlocked {
		bar.Fill = theme.Success
	}
	return title + "\n" + desc + "\n" + bar.View() + "\n"
}

func (a *AchievementsScreen) Title() string {
	return "Achievements"
}

func (a *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "Esc", Description: "Back"},
	}
}
