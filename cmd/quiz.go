package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

var errCoachDisabled = errors.New("the coach is off: set llm.provider in the config")

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Look at finished quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a child's quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		sessions := svc.Sessions.ForChild(cmd.Context(), c.ID)
		if len(sessions) == 0 {
			fmt.Fprintf(out(cmd), "%s has not taken a quiz yet.\n", c.Name)
			return nil
		}

		fmt.Fprintf(out(cmd), "%-36s  %-16s  %-6s  %-7s  %s\n", "ID", "Started", "Ages", "Score", "Grade")
		rule(cmd, 86)
		for _, s := range sessions {
			score := s.Score()
			grade := "in progress"
			if s.IsCompleted() {
				grade = string(score.Grade())
			}
			fmt.Fprintf(out(cmd), "%-36s  %-16s  %-6s  %3d/%-3d  %s\n",
				s.ID, s.StartDate.Local().Format("2006-01-02 15:04"), s.AgeRange,
				score.Good, score.Total, grade)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a quiz summary for parents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := svc.Sessions.Get(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("quiz %q not found", args[0])
		}
		share, _ := cmd.Flags().GetBool("share")
		summary := quiz.Summarize(s)
		if share {
			fmt.Fprintln(out(cmd), quiz.ShareText(s, summary))
			return nil
		}

		score := s.Score()
		heading(cmd, fmt.Sprintf("Quiz %s", s.StartDate.Local().Format("Mon Jan 2, 3:04 PM")))
		fmt.Fprintf(out(cmd), "%d of %d good choices (%.0f%%) · %s\n\n",
			score.Good, score.Total, score.GoodPercentage(), score.Grade())
		for _, a := range s.Answers {
			fmt.Fprintf(out(cmd), "  %s %-28s %-12s %s\n",
				a.SelectedChoiceType.Emoji(), a.StoryTitle, a.Feeling, a.SelectedChoiceType.Title())
		}
		fmt.Fprintln(out(cmd))
		fmt.Fprintln(out(cmd), summary)
		return nil
	},
}

var quizAdoptCmd = &cobra.Command{
	Use:   "adopt",
	Short: "Give quizzes saved before profiles existed to the current child",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		n := svc.Sessions.AssignUnowned(cmd.Context(), c.ID)
		fmt.Fprintf(out(cmd), "Moved %d quizzes to %s.\n", n, c.Name)
		return nil
	},
}

var quizCoachCmd = &cobra.Command{
	Use:   "coach <id>",
	Short: "Ask the coach for conversation starters about a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !svc.Coach.Enabled() {
			return errCoachDisabled
		}
		s, ok := svc.Sessions.Get(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("quiz %q not found", args[0])
		}
		starters, err := svc.Coach.Starters(cmd.Context(), s)
		if err != nil {
			return fmt.Errorf("coach: %w", err)
		}
		heading(cmd, "Things to talk about")
		for i, line := range starters {
			fmt.Fprintf(out(cmd), "%d. %s\n", i+1, line)
		}
		return nil
	},
}

func init() {
	quizShowCmd.Flags().Bool("share", false, "Print the plain-text share version")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizAdoptCmd)
	quizCmd.AddCommand(quizCoachCmd)
}
