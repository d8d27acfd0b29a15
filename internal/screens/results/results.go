// Package results shows a finished quiz: score, the written summary, new
// achievements and, when a coach is configured, conversation starters.
package results

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/coach"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

const pollInterval = 150 * time.Millisecond

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// coachPollMsg drives the spinner while starters are generated.
type coachPollMsg time.Time

type coachState int

const (
	coachOff coachState = iota
	coachWaiting
	coachDone
)

// ResultsScreen is shown in place of the quiz once it ends.
type ResultsScreen struct {
	coach    *coach.Service
	child    child.Child
	session  quiz.Session
	summary  string
	unlocked []achievement.Achievement

	state    coachState
	starters []string
	coachErr error
	frame    int

	showShare bool
	offset    int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a finished session.
func New(svc *services.Services, c child.Child, session quiz.Session, unlocked []achievement.Achievement) *ResultsScreen {
	return &ResultsScreen{
		coach:    svc.Coach,
		child:    c,
		session:  session,
		summary:  quiz.Summarize(session),
		unlocked: unlocked,
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return coachPollMsg(t)
	})
}

// Init asks the coach for starters in the background when one is set up.
func (r *ResultsScreen) Init() tea.Cmd {
	if !r.coach.Enabled() || r.session.TotalStories() == 0 {
		return nil
	}
	r.state = coachWaiting
	r.coach.Request(context.Background(), r.session)
	return poll()
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coachPollMsg:
		if r.state != coachWaiting {
			return r, nil
		}
		res, ok := r.coach.Consume()
		if !ok {
			r.frame++
			return r, poll()
		}
		r.state = coachDone
		r.starters, r.coachErr = res.Starters, res.Err
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return r, router.PopToRoot
		case "s":
			r.showShare = !r.showShare
			r.offset = 0
		case "down", "j":
			r.offset++
		case "up", "k":
			r.offset = max(r.offset-1, 0)
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	col := layout.Column(width)
	var body string
	if r.showShare {
		body = theme.Body.Width(col).Render(quiz.ShareText(r.session, r.summary))
	} else {
		body = r.report(col)
	}

	lines := strings.Split(body, "\n")
	if len(lines) > height {
		off := min(r.offset, len(lines)-height)
		lines = lines[off : off+height]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (r *ResultsScreen) report(col int) string {
	score := r.session.Score()
	var b strings.Builder

	heading := "Quiz complete!"
	if r.child.Name != "" {
		heading = fmt.Sprintf("Great job, %s!", r.child.Name)
	}
	b.WriteString(theme.Title.Render(heading) + "\n\n")

	grade := lipgloss.NewStyle().Foreground(gradeColor(score.Grade())).Bold(true).
		Render(fmt.Sprintf("%s  %d%%", score.Grade(), int(score.GoodPercentage())))
	b.WriteString(grade + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Great %d  ·  Okay %d  ·  Not kind %d  ·  Off topic %d",
		score.Good, score.Okay, score.Bad, score.Unrelated)) + "\n\n")

	if u := components.Unlocked(r.unlocked); u != "" {
		b.WriteString(u + "\n\n")
	}

	b.WriteString(theme.Body.Width(col).Render(r.summary) + "\n")

	switch r.state {
	case coachWaiting:
		b.WriteString("\n" + theme.Hint.Render(spinnerFrames[r.frame%len(spinnerFrames)]+" Thinking of questions to talk about…") + "\n")
	case coachDone:
		b.WriteString("\n" + r.starterView(col) + "\n")
	}
	return b.String()
}

func (r *ResultsScreen) starterView(col int) string {
	if r.coachErr != nil {
		return theme.Hint.Render("Conversation ideas are not available right now.")
	}
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Talk about it together") + "\n")
	for _, s := range r.starters {
		b.WriteString(theme.Body.Width(col).Render("• "+s) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func gradeColor(g quiz.Grade) color.Color {
	switch g {
	case quiz.GradeExcellent:
		return theme.Success
	case quiz.GradeGood:
		return theme.Secondary
	case quiz.GradeFair:
		return theme.Accent
	default:
		return theme.Warning
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	share := "Share text"
	if r.showShare {
		share = "Report"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "s", Description: share},
		{Key: "Enter", Description: "Home"},
	}
}
