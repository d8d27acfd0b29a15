package quiz

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func story(id, feeling string) catalog.Story {
	return catalog.Story{
		ID:          id,
		AgeRange:    catalog.AgeSevenToNine,
		Animal:      "Fox",
		AnimalEmoji: "🦊",
		Title:       "Story " + id,
		Feeling:     feeling,
		Story:       "Something happened.",
		Choices: []catalog.Choice{
			{ID: catalog.ChoiceA, Text: "Kind", Type: catalog.ChoiceGood, Explanation: "Nice."},
			{ID: catalog.ChoiceB, Text: "Unkind", Type: catalog.ChoiceBad, Explanation: "Ouch."},
		},
	}
}

func setup(t *testing.T, stories ...catalog.Story) (*services.Services, child.Child) {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	svc := services.New(memory.New(), services.Options{
		Clock:   clock,
		Catalog: catalog.FromStories(stories),
	})
	age := 8
	c, err := svc.Profiles.Create(context.Background(), "Leo", &age, nil)
	if err != nil {
		t.Fatal(err)
	}
	return svc, c
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestQuiz_PlaysThroughAndSaves(t *testing.T) {
	svc, c := setup(t, story("s1", "Sad"), story("s2", "Angry"))
	q := New(svc, c)

	if !strings.Contains(q.View(100, 40), "Story 1 of 2") {
		t.Error("progress should start at story 1")
	}

	q.Update(enter())
	if q.chosen == nil {
		t.Fatal("enter should answer")
	}
	if _, cmd := q.Update(enter()); cmd != nil {
		t.Fatal("moving to the second story needs no command")
	}
	if q.story.ID != "s2" {
		t.Fatalf("current story = %s, want s2", q.story.ID)
	}

	q.Update(enter())
	_, cmd := q.Update(enter())
	if cmd == nil {
		t.Fatal("finishing should show results")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Results" {
		t.Errorf("replacement = %q", msg.Screen.Title())
	}

	sessions := svc.Sessions.CompletedForChild(context.Background(), c.ID)
	if len(sessions) != 1 || sessions[0].TotalStories() != 2 {
		t.Fatalf("sessions = %+v", sessions)
	}
	if got := svc.Ledger.CurrentStreak(context.Background(), c.ID, svc.Now()); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestQuiz_LockedUntilNext(t *testing.T) {
	svc, c := setup(t, story("s1", "Sad"), story("s2", "Happy"))
	q := New(svc, c)

	q.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	first := *q.chosen
	q.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if q.chosen.ID != first.ID {
		t.Error("a second key should not change the answer")
	}
	answered, _ := q.builder.Progress()
	if answered != 1 {
		t.Errorf("answered = %d, want 1", answered)
	}
}

func TestQuiz_NoStories(t *testing.T) {
	svc, c := setup(t)
	q := New(svc, c)
	if !strings.Contains(q.View(80, 24), "no stories") {
		t.Error("empty band should say so")
	}
	if _, cmd := q.Update(enter()); cmd != nil {
		t.Error("keys do nothing without stories")
	}
}

func TestQuiz_UnownedSession(t *testing.T) {
	svc, _ := setup(t, story("s1", "Sad"))
	q := New(svc, child.Child{})
	q.Update(enter())
	q.Update(enter())

	if n := len(svc.Sessions.Unowned(context.Background())); n != 1 {
		t.Errorf("unowned sessions = %d, want 1", n)
	}
}
