package journal

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/child"
	jr "github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

const gridColumns = 4

type step int

const (
	stepFeeling step = iota
	stepNotes
	stepSaved
)

// EntryScreen picks a feeling from a grid, then takes optional notes.
type EntryScreen struct {
	svc      *services.Services
	child    child.Child
	feelings []jr.FeelingOption
	cursor   int
	notes    components.TextInput
	step     step
	saved    jr.Entry
	unlocked []achievement.Achievement
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)

// NewEntry creates an empty entry form for c.
func NewEntry(svc *services.Services, c child.Child) *EntryScreen {
	notes := components.NewTextInput("What happened? (optional)", false, 200)
	notes.Blur()
	return &EntryScreen{
		svc:      svc,
		child:    c,
		feelings: jr.CommonFeelings(),
		notes:    notes,
	}
}

func (e *EntryScreen) Init() tea.Cmd {
	return nil
}

func (e *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch e.step {
	case stepFeeling:
		return e, e.updateGrid(msg)
	case stepNotes:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			e.save()
			return e, nil
		}
		var cmd tea.Cmd
		e.notes, cmd = e.notes.Update(msg)
		return e, cmd
	default:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return e, router.Pop
		}
	}
	return e, nil
}

func (e *EntryScreen) updateGrid(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	n := len(e.feelings)
	switch kmsg.String() {
	case "left", "h":
		e.cursor = max(e.cursor-1, 0)
	case "right", "l":
		e.cursor = min(e.cursor+1, n-1)
	case "up", "k":
		if e.cursor-gridColumns >= 0 {
			e.cursor -= gridColumns
		}
	case "down", "j":
		if e.cursor+gridColumns < n {
			e.cursor += gridColumns
		}
	case "enter", "space":
		e.step = stepNotes
		return e.notes.Focus()
	}
	return nil
}

func (e *EntryScreen) save() {
	f := e.feelings[e.cursor]
	entry := jr.Entry{
		ChildID:      e.child.ID,
		FeelingName:  f.Name,
		FeelingEmoji: f.Emoji,
	}
	if notes := strings.TrimSpace(e.notes.Value()); notes != "" {
		entry.Notes = &notes
	}
	e.saved, e.unlocked = e.svc.Tracker.SaveJournalEntry(context.Background(), entry)
	e.notes.Blur()
	e.step = stepSaved
}

func (e *EntryScreen) View(width, height int) string {
	var b strings.Builder
	switch e.step {
	case stepFeeling:
		b.WriteString(theme.Title.Render("How do you feel?") + "\n\n")
		b.WriteString(e.grid())
	case stepNotes:
		f := e.feelings[e.cursor]
		b.WriteString(theme.Title.Render("Feeling "+f.Emoji+" "+f.Name) + "\n\n")
		b.WriteString(e.notes.View() + "\n")
	default:
		b.WriteString(theme.Title.Render("Saved "+e.saved.FeelingEmoji+" "+e.saved.FeelingName) + "\n")
		b.WriteString(theme.Hint.Render("Thank you for sharing how you feel.") + "\n")
		if u := components.Unlocked(e.unlocked); u != "" {
			b.WriteString("\n" + u + "\n")
		}
	}
	return layout.Centered(b.String(), width, height)
}

func (e *EntryScreen) grid() string {
	var b strings.Builder
	for i, f := range e.feelings {
		cell := f.Emoji + " " + f.Name
		style := theme.Unselected.Width(16)
		if i == e.cursor {
			style = theme.Selected.Width(16)
			cell = "▸" + cell
		} else {
			cell = " " + cell
		}
		b.WriteString(style.Render(cell))
		if (i+1)%gridColumns == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (e *EntryScreen) Title() string {
	return "New Entry"
}

func (e *EntryScreen) KeyHints() []layout.KeyHint {
	switch e.step {
	case stepFeeling:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Esc", Description: "Cancel"},
		}
	case stepNotes:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
}
