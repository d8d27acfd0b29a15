package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write down and read back feelings",
}

var journalAddCmd = &cobra.Command{
	Use:   "add <feeling>",
	Short: "Add a journal entry for the current child",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		feeling := strings.ToLower(strings.TrimSpace(args[0]))
		if feeling == "" {
			return fmt.Errorf("feeling is required")
		}
		e := journal.Entry{
			ChildID:      c.ID,
			FeelingName:  feeling,
			FeelingEmoji: journal.EmojiFor(feeling),
		}
		if notes, _ := cmd.Flags().GetString("notes"); strings.TrimSpace(notes) != "" {
			n := strings.TrimSpace(notes)
			e.Notes = &n
		}

		saved, unlocked := svc.Tracker.SaveJournalEntry(cmd.Context(), e)
		fmt.Fprintf(out(cmd), "Saved %s %s for %s.\n", saved.FeelingEmoji, saved.FeelingName, c.Name)
		printUnlocked(cmd, unlocked)
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		entries := svc.Journal.Entries(cmd.Context(), c.ID)
		if len(entries) == 0 {
			fmt.Fprintf(out(cmd), "%s's journal is empty.\n", c.Name)
			return nil
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		fmt.Fprintf(out(cmd), "%-36s  %-16s  %s\n", "ID", "When", "Feeling")
		rule(cmd, 76)
		for _, e := range entries {
			line := e.FeelingEmoji + " " + e.FeelingName
			if e.Notes != nil {
				line += ": " + *e.Notes
			}
			fmt.Fprintf(out(cmd), "%-36s  %-16s  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), line)
		}
		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentChild(cmd)
		if err != nil {
			return err
		}
		if err := svc.Journal.Delete(cmd.Context(), c.ID, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), "Deleted.")
		return nil
	},
}

var journalFeelingsCmd = &cobra.Command{
	Use:         "feelings",
	Short:       "List the feelings offered in the journal",
	Annotations: map[string]string{annotationNoServices: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range journal.CommonFeelings() {
			fmt.Fprintf(out(cmd), "%s  %s\n", f.Emoji, f.Name)
		}
	},
}

func init() {
	journalAddCmd.Flags().String("notes", "", "What happened")
	journalListCmd.Flags().Int("limit", 0, "Show at most this many entries")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalFeelingsCmd)
}
