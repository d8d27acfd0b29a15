// Package agepicker lets the player choose the story age band when the
// selected child has no age.
package agepicker

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// AgePickerScreen stores the chosen band and closes.
type AgePickerScreen struct {
	svc  *services.Services
	menu components.Menu
}

var _ screen.Screen = (*AgePickerScreen)(nil)

// New creates an AgePickerScreen with the current band highlighted.
func New(svc *services.Services) *AgePickerScreen {
	ctx := context.Background()
	current, _ := svc.Profiles.SelectedAgeBand(ctx)

	a := &AgePickerScreen{svc: svc}
	bands := catalog.AgeBands()
	items := make([]components.MenuItem, len(bands))
	for i, band := range bands {
		items[i] = components.MenuItem{
			Label:  band.DisplayName(),
			Hint:   fmt.Sprintf("%d stories", len(svc.Catalog.ByAgeBand(band))),
			Action: a.pick(band),
		}
	}
	a.menu = components.NewMenu(items)
	for i, band := range bands {
		if band == current {
			a.menu.Selected = i
		}
	}
	return a
}

func (a *AgePickerScreen) pick(band catalog.AgeBand) func() tea.Cmd {
	return func() tea.Cmd {
		a.svc.Profiles.SetAgeBand(context.Background(), band)
		return router.Pop
	}
}

func (a *AgePickerScreen) Init() tea.Cmd {
	return nil
}

func (a *AgePickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	a.menu, cmd = a.menu.Update(msg)
	return a, cmd
}

func (a *AgePickerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("How old is our reader?") + "\n\n")
	b.WriteString(a.menu.View())
	b.WriteString("\n" + theme.Hint.Render("A child's age, when set, picks the band for them."))
	return layout.Centered(b.String(), width, height)
}

func (a *AgePickerScreen) Title() string {
	return "Age"
}
