// Package profiles lists, adds, selects and deletes child profiles.
package profiles

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// ProfilesScreen lists the children. Enter selects, x twice deletes.
type ProfilesScreen struct {
	svc        *services.Services
	children   []child.Child
	selectedID string
	menu       components.Menu
	confirm    string
	status     string
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)
var _ screen.Refresher = (*ProfilesScreen)(nil)

// New creates a ProfilesScreen.
func New(svc *services.Services) *ProfilesScreen {
	p := &ProfilesScreen{svc: svc}
	p.load()
	return p
}

func (p *ProfilesScreen) load() {
	ctx := context.Background()
	p.children = p.svc.Profiles.List(ctx)
	p.selectedID = ""
	if c, ok := p.svc.Profiles.Selected(ctx); ok {
		p.selectedID = c.ID
	}

	items := make([]components.MenuItem, 0, len(p.children)+1)
	for _, c := range p.children {
		item := components.MenuItem{Label: label(c), Action: p.selectAction(c.ID)}
		if c.ID == p.selectedID {
			item.Hint = "playing now"
		}
		items = append(items, item)
	}
	items = append(items, components.MenuItem{
		Label:  "+ Add a child",
		Action: func() tea.Cmd { return router.Push(NewForm(p.svc)) },
	})

	cur := p.menu.Selected
	p.menu = components.NewMenu(items)
	if cur < len(items) {
		p.menu.Selected = cur
	}
	p.confirm = ""
}

func label(c child.Child) string {
	if c.Age == nil {
		return c.Name
	}
	return fmt.Sprintf("%s (age %d)", c.Name, *c.Age)
}

func (p *ProfilesScreen) selectAction(id string) func() tea.Cmd {
	return func() tea.Cmd {
		if _, err := p.svc.Profiles.Select(context.Background(), id); err != nil {
			p.status = err.Error()
			return nil
		}
		return router.Pop
	}
}

func (p *ProfilesScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the list after the add form closes.
func (p *ProfilesScreen) Refresh() tea.Cmd {
	p.load()
	return nil
}

func (p *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if kmsg.String() == "x" {
		p.delete()
		return p, nil
	}
	p.confirm = ""
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

// delete arms on the first press and removes the child on the second.
func (p *ProfilesScreen) delete() {
	i := p.menu.Selected
	if i < 0 || i >= len(p.children) {
		return
	}
	c := p.children[i]
	if p.confirm != c.ID {
		p.confirm = c.ID
		p.status = fmt.Sprintf("Press x again to delete %s and all of their progress.", c.Name)
		return
	}
	if err := p.svc.Profiles.Delete(context.Background(), c.ID); err != nil {
		p.status = err.Error()
		return
	}
	p.load()
	p.status = fmt.Sprintf("Deleted %s.", c.Name)
}

func (p *ProfilesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Who is playing?") + "\n\n")
	if len(p.children) == 0 {
		b.WriteString(theme.Hint.Render("No children yet. Add one to keep track of their stories.") + "\n\n")
	}
	b.WriteString(p.menu.ViewWindow(max(height-8, 3)))
	if p.status != "" {
		b.WriteString("\n" + theme.Subtitle.Render(p.status))
	}
	return layout.Centered(b.String(), width, height)
}

func (p *ProfilesScreen) Title() string {
	return "Children"
}

func (p *ProfilesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
		{Key: "x", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}
