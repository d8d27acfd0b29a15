package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

// open moves the cursor to label and presses enter.
func open(t *testing.T, h *HomeScreen, label string) tea.Msg {
	t.Helper()
	for i, item := range h.menu.Items {
		if item.Label == label {
			h.menu.Selected = i
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatalf("%s returned no command", label)
			}
			return cmd()
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func pushedTitle(t *testing.T, msg tea.Msg) string {
	t.Helper()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	return push.Screen.Title()
}

func TestHome_NoChild(t *testing.T) {
	svc := services.New(memory.New(), services.Options{})
	h := New(svc)

	if !strings.Contains(h.View(100, 40), "Nobody is playing yet") {
		t.Error("view should ask for a child")
	}
	for _, label := range []string{"Achievements", "Feelings Journal", "Growth"} {
		if got := pushedTitle(t, open(t, h, label)); got != "Who is playing?" {
			t.Errorf("%s pushed %q, want the notice", label, got)
		}
	}
	if got := pushedTitle(t, open(t, h, "Read Stories")); got != "Stories" {
		t.Errorf("stories open without a child, got %q", got)
	}
	if got := pushedTitle(t, open(t, h, "Take the Quiz")); got != "Quiz" {
		t.Errorf("quiz opens without a child, got %q", got)
	}
}

func TestHome_WithChild(t *testing.T) {
	svc := services.New(memory.New(), services.Options{})
	h := New(svc)

	ctx := context.Background()
	c, _ := svc.Profiles.Create(ctx, "Mia", nil, nil)
	svc.Profiles.Select(ctx, c.ID)
	svc.Tracker.CompleteStory(ctx, c.ID, "bunny-thunder")
	h.Refresh()

	if !h.hasChild || h.child.ID != c.ID {
		t.Fatal("refresh should pick up the selected child")
	}
	if h.stats.streak != 1 || h.stats.stories != 1 || h.stats.unlocked == 0 {
		t.Errorf("stats = %+v", h.stats)
	}
	view := h.View(100, 40)
	for _, want := range []string{"1 day streak", "1 stories", "Playing as Mia"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	titles := map[string]string{
		"Achievements":     "Achievements",
		"Feelings Journal": "Journal",
		"Growth":           "Growth",
		"Children":         "Children",
		"Age Group":        "Age",
	}
	for label, want := range titles {
		if got := pushedTitle(t, open(t, h, label)); got != want {
			t.Errorf("%s pushed %q, want %q", label, got, want)
		}
	}
}

func TestHome_Quit(t *testing.T) {
	svc := services.New(memory.New(), services.Options{})
	h := New(svc)

	if _, ok := open(t, h, "Quit").(tea.QuitMsg); !ok {
		t.Error("Quit should quit")
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
