package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/child"
)

var childCmd = &cobra.Command{
	Use:   "child",
	Short: "Manage child profiles",
}

var childAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a child",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, notes, err := profileFlags(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		c, err := svc.Profiles.Create(ctx, args[0], age, notes)
		if err != nil {
			return err
		}
		selected := false
		if _, ok := svc.Profiles.Selected(ctx); !ok {
			if _, err := svc.Profiles.Select(ctx, c.ID); err != nil {
				return err
			}
			selected = true
		}
		fmt.Fprintf(out(cmd), "Added %s (%s)\n", c.Name, c.ID)
		if selected {
			fmt.Fprintf(out(cmd), "%s is now playing.\n", c.Name)
		}
		return nil
	},
}

var childListCmd = &cobra.Command{
	Use:   "list",
	Short: "List children",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		children := svc.Profiles.List(ctx)
		if len(children) == 0 {
			fmt.Fprintln(out(cmd), "No children yet. Add one with `bigfeelings child add <name>`.")
			return nil
		}
		sel, _ := svc.Profiles.Selected(ctx)

		fmt.Fprintf(out(cmd), "  %-36s  %-20s  %4s  %-10s  %s\n", "ID", "Name", "Age", "Stories", "Streak")
		rule(cmd, 90)
		for _, c := range children {
			mark := " "
			if c.ID == sel.ID {
				mark = "*"
			}
			fmt.Fprintf(out(cmd), "%s %-36s  %-20s  %4s  %-10d  %d\n",
				mark, c.ID, c.Name, ageText(c),
				len(svc.Ledger.CompletedStoryIDs(ctx, c.ID)),
				svc.Ledger.CurrentStreak(ctx, c.ID, svc.Now()),
			)
		}
		fmt.Fprintf(out(cmd), "\n%d children (* playing)\n", len(children))
		return nil
	},
}

var childUpdateCmd = &cobra.Command{
	Use:   "update <id or name> <new name>",
	Short: "Rename a child or change age and notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		existing, err := findChild(cmd, args[0])
		if err != nil {
			return err
		}
		age, notes, err := profileFlags(cmd)
		if err != nil {
			return err
		}
		// Unset flags keep the stored values.
		if !cmd.Flags().Changed("age") {
			age = existing.Age
		}
		if !cmd.Flags().Changed("notes") {
			notes = existing.Notes
		}
		c, err := svc.Profiles.Update(ctx, existing.ID, args[1], age, notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Updated %s (age %s)\n", c.Name, ageText(c))
		return nil
	},
}

var childDeleteCmd = &cobra.Command{
	Use:   "delete <id or name>",
	Short: "Delete a child and all of their progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := findChild(cmd, args[0])
		if err != nil {
			return err
		}
		if err := svc.Profiles.Delete(ctx, c.ID); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Deleted %s\n", c.Name)
		return nil
	},
}

var childSelectCmd = &cobra.Command{
	Use:   "select <id or name>",
	Short: "Choose who is playing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := findChild(cmd, args[0])
		if err != nil {
			return err
		}
		if _, err := svc.Profiles.Select(cmd.Context(), c.ID); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s is now playing.\n", c.Name)
		return nil
	},
}

// profileFlags reads --age and --notes. Age 0 and empty notes mean unset.
func profileFlags(cmd *cobra.Command) (*int, *string, error) {
	var age *int
	if a, _ := cmd.Flags().GetInt("age"); a != 0 {
		if a < 1 || a > 18 {
			return nil, nil, fmt.Errorf("age must be between 1 and 18, got %d", a)
		}
		age = &a
	}
	var notes *string
	if n, _ := cmd.Flags().GetString("notes"); n != "" {
		notes = &n
	}
	return age, notes, nil
}

func ageText(c child.Child) string {
	if c.Age == nil {
		return "-"
	}
	return strconv.Itoa(*c.Age)
}

func init() {
	for _, c := range []*cobra.Command{childAddCmd, childUpdateCmd} {
		c.Flags().Int("age", 0, "Age in years (1-18)")
		c.Flags().String("notes", "", "Notes for grown-ups")
	}

	childCmd.AddCommand(childAddCmd)
	childCmd.AddCommand(childListCmd)
	childCmd.AddCommand(childUpdateCmd)
	childCmd.AddCommand(childDeleteCmd)
	childCmd.AddCommand(childSelectCmd)
}
