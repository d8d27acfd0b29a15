package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Browse and track stories",
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories for an age group",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.Catalog.Err(); err != nil {
			return fmt.Errorf("story catalog: %w", err)
		}
		ctx := cmd.Context()

		// A missing child is fine here: the list just has no marks.
		c, _ := currentChild(cmd)
		band := svc.AgeBandFor(ctx, c)
		if a, _ := cmd.Flags().GetString("age"); a != "" {
			b, err := catalog.ParseAgeBand(a)
			if err != nil {
				return err
			}
			band = b
		}

		completed, favorites := marks(cmd, c)
		stories := svc.Catalog.ByAgeBand(band)

		heading(cmd, band.DisplayName())
		fmt.Fprintf(out(cmd), "%-24s  %-32s  %-12s  %s\n", "ID", "Title", "Feeling", "")
		rule(cmd, 80)
		for _, s := range stories {
			title := s.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			var m []string
			if completed[s.ID] {
				m = append(m, "✓")
			}
			if favorites[s.ID] {
				m = append(m, "★")
			}
			fmt.Fprintf(out(cmd), "%-24s  %-32s  %-12s  %s\n", s.ID, title, s.Feeling, strings.Join(m, " "))
		}
		fmt.Fprintf(out(cmd), "\n%d stories\n", len(stories))
		return nil
	},
}

// marks returns completed and favorite story sets for c, empty without a
// child.
func marks(cmd *cobra.Command, c child.Child) (completed, favorites map[string]bool) {
	completed, favorites = map[string]bool{}, map[string]bool{}
	if c.ID == "" {
		return completed, favorites
	}
	for _, id := range svc.Ledger.CompletedStoryIDs(cmd.Context(), c.ID) {
		completed[id] = true
	}
	for _, id := range svc.Ledger.Favorites(cmd.Context(), c.ID) {
		favorites[id] = true
	}
	return completed, favorites
}

var storyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a story with its choices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := svc.Catalog.Get(args[0])
		if err != nil {
			return err
		}
		printStory(cmd, s)
		explain, _ := cmd.Flags().GetBool("answers")
		if explain {
			fmt.Fprintln(out(cmd))
			for _, ch := range s.Choices {
				lipgloss.Fprintln(out(cmd), components.Feedback(ch, 72))
			}
			fmt.Fprintln(out(cmd), "\n"+s.EndingMessage)
		}
		return nil
	},
}

func printStory(cmd *cobra.Command, s catalog.Story) {
	heading(cmd, fmt.Sprintf("%s  %s", s.AnimalEmoji, s.Title))
	fmt.Fprintf(out(cmd), "%s · feeling %s\n\n", s.AgeRange.DisplayName(), s.Feeling)
	fmt.Fprintln(out(cmd), s.Story)
	fmt.Fprintln(out(cmd))
	for _, ch := range s.Choices {
		fmt.Fprintf(out(cmd), "  %s) %s\n", ch.ID, ch.Text)
	}
}

var storyCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a story as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		s, err := svc.Catalog.Get(args[0])
		if err != nil {
			return err
		}
		unlocked := svc.Tracker.CompleteStory(cmd.Context(), c.ID, s.ID)
		fmt.Fprintf(out(cmd), "%s read %q.\n", c.Name, s.Title)
		printUnlocked(cmd, unlocked)
		return nil
	},
}

var storyFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Add or remove a favorite story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		s, err := svc.Catalog.Get(args[0])
		if err != nil {
			return err
		}
		fav, unlocked := svc.Tracker.ToggleFavorite(cmd.Context(), c.ID, s.ID)
		if fav {
			fmt.Fprintf(out(cmd), "★ %q is a favorite.\n", s.Title)
		} else {
			fmt.Fprintf(out(cmd), "%q is no longer a favorite.\n", s.Title)
		}
		printUnlocked(cmd, unlocked)
		return nil
	},
}

func init() {
	storyListCmd.Flags().String("age", "", "Age group: 4-6, 7-9 or 10-12 (default from child or selection)")
	storyShowCmd.Flags().Bool("answers", false, "Also print what each choice teaches")

	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyShowCmd)
	storyCmd.AddCommand(storyCompleteCmd)
	storyCmd.AddCommand(storyFavoriteCmd)
}
