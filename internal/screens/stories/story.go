package stories

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// StoryScreen tells one story and lets the child pick what happens next.
// Picking any choice completes the story for the child.
type StoryScreen struct {
	svc      *services.Services
	child    child.Child
	story    catalog.Story
	picker   components.ChoicePicker
	favorite bool
	unlocked []achievement.Achievement
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

// NewStory creates a StoryScreen with the choices shuffled.
func NewStory(svc *services.Services, c child.Child, s catalog.Story) *StoryScreen {
	st := &StoryScreen{
		svc:    svc,
		child:  c,
		story:  s,
		picker: components.NewChoicePicker(quiz.ShuffleChoices(s.Choices, nil)),
	}
	if c.ID != "" {
		st.favorite = svc.Ledger.IsFavorite(context.Background(), c.ID, s.ID)
	}
	return st
}

func (s *StoryScreen) Init() tea.Cmd {
	return nil
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if kmsg.String() == "f" {
		s.toggleFavorite()
		return s, nil
	}

	if s.picker.Locked {
		if kmsg.String() == "enter" {
			return s, router.Pop
		}
		return s, nil
	}

	s.picker, _ = s.picker.Update(msg)
	if s.picker.Locked && s.child.ID != "" {
		s.unlocked = append(s.unlocked, s.svc.Tracker.CompleteStory(context.Background(), s.child.ID, s.story.ID)...)
	}
	return s, nil
}

func (s *StoryScreen) toggleFavorite() {
	if s.child.ID == "" {
		return
	}
	fav, unlocked := s.svc.Tracker.ToggleFavorite(context.Background(), s.child.ID, s.story.ID)
	s.favorite = fav
	s.unlocked = append(s.unlocked, unlocked...)
}

func (s *StoryScreen) View(width, height int) string {
	col := layout.Column(width)
	var b strings.Builder

	title := s.story.AnimalEmoji + "  " + s.story.Title
	if s.favorite {
		title += "  ★"
	}
	b.WriteString(theme.Title.Render(title) + "\n")
	b.WriteString(theme.Subtitle.Render("Feeling: "+s.story.Feeling) + "\n\n")
	b.WriteString(theme.Body.Width(col).Render(s.story.Story) + "\n\n")
	b.WriteString(theme.Heading.Render("What should "+s.story.Animal+" do?") + "\n")
	b.WriteString(s.picker.View(col))

	if c, ok := s.picker.Choice(); ok {
		b.WriteString("\n" + components.Feedback(c, col) + "\n")
		b.WriteString("\n" + theme.Body.Width(col).Render(s.story.EndingMessage) + "\n")
	}
	if u := components.Unlocked(s.unlocked); u != "" {
		b.WriteString("\n" + u)
	}
	return layout.Centered(b.String(), width, height)
}

func (s *StoryScreen) Title() string {
	return s.story.Title
}

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "a-d", Description: "Choose"},
		{Key: "f", Description: "Favorite"},
		{Key: "Esc", Description: "Back"},
	}
	if s.picker.Locked {
		hints[0] = layout.KeyHint{Key: "Enter", Description: "Done"}
	}
	return hints
}
