package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show badges and progress toward them",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		all := svc.Achievements.Get(cmd.Context(), c.ID)
		sum := achievement.Summarize(all)
		onlyUnlocked, _ := cmd.Flags().GetBool("unlocked")

		heading(cmd, fmt.Sprintf("%s's badges: %d of %d", c.Name, sum.Unlocked, sum.Total))
		byCategory := achievement.ByCategory(all)
		for _, cat := range achievement.Categories() {
			fmt.Fprintf(out(cmd), "\n%s %s\n", cat.Icon(), cat.DisplayName())
			rule(cmd, 60)
			for _, a := range byCategory[cat] {
				if onlyUnlocked && !a.IsUnlocked {
					continue
				}
				status := fmt.Sprintf("%d/%d", min(a.CurrentProgress, a.Requirement), a.Requirement)
				if a.IsUnlocked {
					status = "unlocked"
					if a.UnlockedDate != nil {
						status += " " + a.UnlockedDate.Local().Format("2006-01-02")
					}
				}
				fmt.Fprintf(out(cmd), "  %s  %-24s %s\n", components.Glyph(a), a.Title, status)
			}
		}
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		days := svc.Ledger.CurrentStreak(ctx, c.ID, svc.Now())

		switch days {
		case 0:
			fmt.Fprintf(out(cmd), "%s has no streak right now.\n", c.Name)
		case 1:
			fmt.Fprintf(out(cmd), "🔥 %s: 1 day\n", c.Name)
		default:
			fmt.Fprintf(out(cmd), "🔥 %s: %d days in a row\n", c.Name, days)
		}
		if last, ok := svc.Ledger.LastActivity(ctx, c.ID); ok {
			fmt.Fprintf(out(cmd), "Last active: %s\n", last.Local().Format("Mon Jan 2"))
		}
		return nil
	},
}

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Summarize quiz results over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		sessions := svc.Sessions.CompletedForChild(cmd.Context(), c.ID)
		o := quiz.Overview(c.Name, sessions)

		heading(cmd, c.Name+"'s growth")
		if o.Sessions == 0 {
			fmt.Fprintln(out(cmd), "Finish a quiz to start tracking growth.")
			return nil
		}
		fmt.Fprintf(out(cmd), "%d completed · average %.0f%% (%s)\n\n",
			o.Sessions, o.AverageScore, quiz.GradeFor(o.AverageScore))
		fmt.Fprintln(out(cmd), o.Summary)
		if len(o.StrugglingFeelings) > 0 {
			fmt.Fprintf(out(cmd), "\nFeelings to practice: %s\n", strings.Join(o.StrugglingFeelings, ", "))
		}
		return nil
	},
}

// printUnlocked lists achievements that an action just unlocked.
func printUnlocked(cmd *cobra.Command, unlocked []achievement.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(out(cmd), "🎉 New badge: %s %s\n", components.Glyph(a), a.Title)
	}
}

func init() {
	achievementsCmd.Flags().Bool("unlocked", false, "Only list unlocked badges")
}
