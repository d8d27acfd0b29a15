// Package growth shows how a child's quiz results add up over time.
package growth

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

const recentSessions = 5

// GrowthScreen renders the growth overview and the latest sessions.
type GrowthScreen struct {
	child    child.Child
	overview quiz.GrowthOverview
	sessions []quiz.Session // newest first
}

var _ screen.Screen = (*GrowthScreen)(nil)
var _ screen.KeyHintProvider = (*GrowthScreen)(nil)

// New loads c's completed sessions.
func New(svc *services.Services, c child.Child) *GrowthScreen {
	sessions := svc.Sessions.CompletedForChild(context.Background(), c.ID)
	return &GrowthScreen{
		child:    c,
		overview: quiz.Overview(c.Name, sessions),
		sessions: sessions,
	}
}

func (g *GrowthScreen) Init() tea.Cmd {
	return nil
}

func (g *GrowthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return g, nil
}

func (g *GrowthScreen) View(width, height int) string {
	col := layout.Column(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(g.child.Name+"'s growth") + "\n\n")

	if g.overview.Sessions == 0 {
		b.WriteString(theme.Body.Width(col).Render(g.overview.Summary) + "\n\n")
		b.WriteString(theme.Hint.Render("Finish a quiz to start tracking growth."))
		return layout.Centered(b.String(), width, height)
	}

	avg := g.overview.AverageScore
	grade := quiz.GradeFor(avg)
	b.WriteString(theme.Heading.Render("Quizzes") + "  " +
		theme.Body.Render(fmt.Sprintf("%d completed", g.overview.Sessions)) + "\n")
	b.WriteString(theme.Heading.Render("Average") + "  " +
		lipgloss.NewStyle().Bold(true).Foreground(theme.Success).Render(fmt.Sprintf("%.0f%%", avg)) +
		theme.Muted.Render("  "+string(grade)) + "\n")
	bar := components.ProgressBar{Percent: avg / 100, Width: col, Fill: theme.Success}
	b.WriteString(bar.View() + "\n\n")

	b.WriteString(theme.Card.Width(col).Render(g.overview.Summary) + "\n\n")

	if len(g.overview.StrugglingFeelings) > 0 {
		b.WriteString(theme.Heading.Render("Feelings to practice") + "\n")
		for _, f := range g.overview.StrugglingFeelings {
			b.WriteString("  • " + theme.Body.Render(f) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Heading.Render("Recent quizzes") + "\n")
	for _, s := range g.recent() {
		score := s.Score()
		date := s.StartDate.Local().Format("Jan 2")
		if s.EndDate != nil {
			date = s.EndDate.Local().Format("Jan 2")
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			theme.Muted.Render(date),
			theme.Body.Render(fmt.Sprintf("%d/%d good", score.Good, score.Total)),
			theme.Hint.Render(fmt.Sprintf("%.0f%%", score.GoodPercentage())),
		))
	}
	return layout.Centered(b.String(), width, height)
}

func (g *GrowthScreen) recent() []quiz.Session {
	return g.sessions[:min(len(g.sessions), recentSessions)]
}

func (g *GrowthScreen) Title() string {
	return "Growth"
}

func (g *GrowthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
