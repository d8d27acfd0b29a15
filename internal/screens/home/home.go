// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/screens/achievements"
	"github.com/bigfeelings/bigfeelings/internal/screens/agepicker"
	"github.com/bigfeelings/bigfeelings/internal/screens/growth"
	"github.com/bigfeelings/bigfeelings/internal/screens/journal"
	"github.com/bigfeelings/bigfeelings/internal/screens/notice"
	"github.com/bigfeelings/bigfeelings/internal/screens/profiles"
	quizscreen "github.com/bigfeelings/bigfeelings/internal/screens/quiz"
	"github.com/bigfeelings/bigfeelings/internal/screens/stories"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc      *services.Services
	child    child.Child
	hasChild bool
	stats    stats
	menu     components.Menu
}

type stats struct {
	streak   int
	stories  int
	unlocked int
	total    int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen for the selected child.
func New(svc *services.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.load()
	return h
}

func (h *HomeScreen) load() {
	ctx := context.Background()
	h.child, h.hasChild = h.svc.Profiles.Selected(ctx)
	h.stats = stats{}
	if h.hasChild {
		sum := achievement.Summarize(h.svc.Achievements.Get(ctx, h.child.ID))
		h.stats = stats{
			streak:   h.svc.Ledger.CurrentStreak(ctx, h.child.ID, h.svc.Now()),
			stories:  len(h.svc.Ledger.CompletedStoryIDs(ctx, h.child.ID)),
			unlocked: sum.Unlocked,
			total:    sum.Total,
		}
	}

	cur := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if cur < len(h.menu.Items) {
		h.menu.Selected = cur
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	band := h.svc.AgeBandFor(context.Background(), h.child)
	who := "Pick a child"
	if h.hasChild {
		who = "Playing as " + h.child.Name
	}
	return []components.MenuItem{
		{Label: "Take the Quiz", Hint: band.DisplayName(), Action: func() tea.Cmd {
			return router.Push(quizscreen.New(h.svc, h.child))
		}},
		{Label: "Read Stories", Hint: band.DisplayName(), Action: func() tea.Cmd {
			return router.Push(stories.New(h.svc, h.child))
		}},
		{Label: "Achievements", Action: h.forChild(func(c child.Child) screen.Screen {
			return achievements.New(h.svc, c)
		})},
		{Label: "Feelings Journal", Action: h.forChild(func(c child.Child) screen.Screen {
			return journal.New(h.svc, c)
		})},
		{Label: "Growth", Action: h.forChild(func(c child.Child) screen.Screen {
			return growth.New(h.svc, c)
		})},
		{Label: "Children", Hint: who, Action: func() tea.Cmd {
			return router.Push(profiles.New(h.svc))
		}},
		{Label: "Age Group", Hint: band.DisplayName(), Action: func() tea.Cmd {
			return router.Push(agepicker.New(h.svc))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// forChild opens build for the selected child, or explains that one is
// needed.
func (h *HomeScreen) forChild(build func(child.Child) screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		if !h.hasChild {
			return router.Push(notice.New("Who is playing?",
				"Add or pick a child under Children first."))
		}
		return router.Push(build(h.child))
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh picks up a changed selection or new progress.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("♥ Big Feelings") + "\n")
	b.WriteString(theme.Subtitle.Render("Stories about feelings and kind choices") + "\n\n")

	if h.hasChild {
		b.WriteString(h.statsLine() + "\n\n")
	} else {
		b.WriteString(theme.Hint.Render("Nobody is playing yet. Add a child under Children.") + "\n\n")
	}

	b.WriteString(h.menu.View())
	return layout.Centered(b.String(), width, height)
}

func (h *HomeScreen) statsLine() string {
	parts := []string{
		theme.Body.Render(fmt.Sprintf("🔥 %d day streak", h.stats.streak)),
		theme.Body.Render(fmt.Sprintf("📖 %d stories", h.stats.stories)),
		theme.Body.Render(fmt.Sprintf("🏅 %d/%d badges", h.stats.unlocked, h.stats.total)),
	}
	return theme.Card.Render(strings.Join(parts, theme.Muted.Render("  ·  ")))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open"},
		{Key: "q", Description: "Quit"},
	}
}
