// Package stories lists the stories for the reader's age band and plays
// them one at a time.
package stories

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// ListScreen shows the band's stories with completed and favorite marks.
type ListScreen struct {
	svc     *services.Services
	child   child.Child
	band    catalog.AgeBand
	stories []catalog.Story
	menu    components.Menu
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.Refresher = (*ListScreen)(nil)

// New lists stories for c. A zero child reads without saving progress.
func New(svc *services.Services, c child.Child) *ListScreen {
	l := &ListScreen{svc: svc, child: c}
	l.band = svc.AgeBandFor(context.Background(), c)
	l.stories = svc.Catalog.ByAgeBand(l.band)
	l.load()
	return l
}

func (l *ListScreen) load() {
	ctx := context.Background()
	completed := map[string]bool{}
	favorites := map[string]bool{}
	if l.child.ID != "" {
		for _, id := range l.svc.Ledger.CompletedStoryIDs(ctx, l.child.ID) {
			completed[id] = true
		}
		for _, id := range l.svc.Ledger.Favorites(ctx, l.child.ID) {
			favorites[id] = true
		}
	}

	items := make([]components.MenuItem, len(l.stories))
	for i, s := range l.stories {
		marks := ""
		if completed[s.ID] {
			marks += " ✓"
		}
		if favorites[s.ID] {
			marks += " ★"
		}
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%s  %s%s", s.AnimalEmoji, s.Title, marks),
			Hint:   s.Feeling,
			Action: l.open(s),
		}
	}
	cur := l.menu.Selected
	l.menu = components.NewMenu(items)
	if cur < len(items) {
		l.menu.Selected = cur
	}
}

func (l *ListScreen) open(s catalog.Story) func() tea.Cmd {
	return func() tea.Cmd {
		return router.Push(NewStory(l.svc, l.child, s))
	}
}

func (l *ListScreen) Init() tea.Cmd {
	return nil
}

// Refresh picks up marks changed by the story screen.
func (l *ListScreen) Refresh() tea.Cmd {
	l.load()
	return nil
}

func (l *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *ListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Stories") + "  " + theme.Subtitle.Render(l.band.DisplayName()) + "\n\n")
	if l.svc.Catalog.HasError() {
		b.WriteString(theme.ErrorText.Render("The story book could not be opened.") + "\n")
		return layout.Centered(b.String(), width, height)
	}
	if len(l.stories) == 0 {
		b.WriteString(theme.Hint.Render("No stories for this age yet.") + "\n")
		return layout.Centered(b.String(), width, height)
	}
	b.WriteString(l.menu.ViewWindow(max(height-6, 3)))
	if l.child.ID == "" {
		b.WriteString("\n" + theme.Hint.Render("Choose a child on the home screen to save progress."))
	}
	return layout.Centered(b.String(), width, height)
}

func (l *ListScreen) Title() string {
	return "Stories"
}
