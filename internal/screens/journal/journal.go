// Package journal is the feelings journal: today's feeling, past entries
// and a form to add one.
package journal

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/child"
	jr "github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

const entryTimeLayout = "Mon Jan 2, 3:04 PM"

// JournalScreen lists entries newest first.
type JournalScreen struct {
	svc     *services.Services
	child   child.Child
	entries []jr.Entry
	today   *jr.Entry
	menu    components.Menu
	confirm string
}

var _ screen.Screen = (*JournalScreen)(nil)
var _ screen.KeyHintProvider = (*JournalScreen)(nil)
var _ screen.Refresher = (*JournalScreen)(nil)

// New creates the journal for c.
func New(svc *services.Services, c child.Child) *JournalScreen {
	j := &JournalScreen{svc: svc, child: c}
	j.load()
	return j
}

func (j *JournalScreen) load() {
	ctx := context.Background()
	j.entries = j.svc.Journal.Entries(ctx, j.child.ID)
	j.today = nil
	if e, ok := j.svc.Journal.TodaysEntry(ctx, j.child.ID, j.svc.Now()); ok {
		j.today = &e
	}

	items := make([]components.MenuItem, len(j.entries))
	for i, e := range j.entries {
		label := fmt.Sprintf("%s  %s", e.FeelingEmoji, e.FeelingName)
		hint := e.Timestamp.Local().Format(entryTimeLayout)
		if e.Notes != nil {
			hint += "  " + *e.Notes
		}
		items[i] = components.MenuItem{Label: label, Hint: hint}
	}
	cur := j.menu.Selected
	j.menu = components.NewMenu(items)
	if cur < len(items) {
		j.menu.Selected = cur
	}
	j.confirm = ""
}

func (j *JournalScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads entries after the form closes.
func (j *JournalScreen) Refresh() tea.Cmd {
	j.load()
	return nil
}

func (j *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}
	switch kmsg.String() {
	case "n":
		return j, router.Push(NewEntry(j.svc, j.child))
	case "x":
		j.delete()
		return j, nil
	}
	j.confirm = ""
	var cmd tea.Cmd
	j.menu, cmd = j.menu.Update(msg)
	return j, cmd
}

// delete removes the highlighted entry on the second press.
func (j *JournalScreen) delete() {
	i := j.menu.Selected
	if i < 0 || i >= len(j.entries) {
		return
	}
	id := j.entries[i].ID
	if j.confirm != id {
		j.confirm = id
		return
	}
	j.svc.Journal.Delete(context.Background(), j.child.ID, id)
	j.load()
}

func (j *JournalScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(j.child.Name+"'s feelings journal") + "\n\n")

	if j.today != nil {
		b.WriteString(theme.Heading.Render("Today") + "  " +
			theme.Body.Render(j.today.FeelingEmoji+" "+j.today.FeelingName) + "\n\n")
	} else {
		b.WriteString(theme.Hint.Render("How are you feeling today? Press n to write it down.") + "\n\n")
	}

	if len(j.entries) == 0 {
		b.WriteString(theme.Muted.Render("No entries yet.") + "\n")
	} else {
		b.WriteString(j.menu.ViewWindow(max(height-10, 3)))
	}
	if j.confirm != "" {
		b.WriteString("\n" + theme.Subtitle.Render("Press x again to delete this entry."))
	}
	return layout.Centered(b.String(), width, height)
}

func (j *JournalScreen) Title() string {
	return "Journal"
}

func (j *JournalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "n", Description: "New entry"},
		{Key: "x", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}
