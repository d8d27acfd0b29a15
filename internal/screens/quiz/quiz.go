// Package quiz runs a quiz over the reader's age band, one story at a time.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	qz "github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/screens/results"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// QuizScreen walks the builder's stories. After the last answer the session
// is saved and the screen is replaced by the results.
type QuizScreen struct {
	svc     *services.Services
	child   child.Child
	builder *qz.Builder
	story   catalog.Story
	picker  components.ChoicePicker
	chosen  *catalog.Choice
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a quiz for c over every story in their band. A zero child
// plays an unowned quiz.
func New(svc *services.Services, c child.Child) *QuizScreen {
	band := svc.AgeBandFor(context.Background(), c)
	q := &QuizScreen{
		svc:     svc,
		child:   c,
		builder: qz.NewBuilder(band, svc.Catalog.ByAgeBand(band), c.ID, svc.Now()),
	}
	q.advance()
	return q
}

// advance loads the next unanswered story.
func (q *QuizScreen) advance() bool {
	story, ok := q.builder.Next()
	if !ok {
		return false
	}
	q.story = story
	q.picker = components.NewChoicePicker(qz.ShuffleChoices(story.Choices, nil))
	q.chosen = nil
	return true
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || q.story.ID == "" {
		return q, nil
	}

	if q.chosen != nil {
		if kmsg.String() == "enter" || kmsg.String() == "space" {
			return q, q.next()
		}
		return q, nil
	}

	q.picker, _ = q.picker.Update(msg)
	if c, ok := q.picker.Choice(); ok {
		if recorded, ok := q.builder.Answer(q.story, c.ID, q.svc.Now()); ok {
			q.chosen = &recorded
		}
	}
	return q, nil
}

// next moves on, or finishes the quiz after the last story.
func (q *QuizScreen) next() tea.Cmd {
	if q.advance() {
		return nil
	}
	session := q.builder.Finish(q.svc.Now())
	unlocked := q.svc.Tracker.FinishQuiz(context.Background(), q.child.ID, session)
	return router.Replace(results.New(q.svc, q.child, session, unlocked))
}

func (q *QuizScreen) View(width, height int) string {
	if q.story.ID == "" {
		return layout.Centered(theme.Hint.Render("There are no stories for this age yet."), width, height)
	}

	col := layout.Column(width)
	answered, total := q.builder.Progress()
	current := answered + 1
	if q.chosen != nil {
		current = answered
	}

	var b strings.Builder
	b.WriteString(components.Steps(fmt.Sprintf("Story %d of %d", current, total), answered, total, col).View() + "\n\n")
	b.WriteString(theme.Title.Render(q.story.AnimalEmoji+"  "+q.story.Title) + "\n\n")
	b.WriteString(theme.Body.Width(col).Render(q.story.Story) + "\n\n")
	b.WriteString(theme.Heading.Render("What should "+q.story.Animal+" do?") + "\n")
	b.WriteString(q.picker.View(col))
	if q.chosen != nil {
		b.WriteString("\n" + components.Feedback(*q.chosen, col) + "\n")
	}
	return layout.Centered(b.String(), width, height)
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.chosen != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next story"},
			{Key: "Esc", Description: "Stop quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/a-d", Description: "Choose"},
		{Key: "Esc", Description: "Stop quiz"},
	}
}
