package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
)

var ageCmd = &cobra.Command{
	Use:   "age [4-6|7-9|10-12]",
	Short: "Show or set the story age group",
	Long: `Show or set the story age group.

A selected child with a known age always reads stories for that age; the
stored age group is used otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 1 {
			band, err := catalog.ParseAgeBand(args[0])
			if err != nil {
				return err
			}
			svc.Profiles.SetAgeBand(ctx, band)
			fmt.Fprintf(out(cmd), "Age group set to %s (%d stories)\n",
				band.DisplayName(), len(svc.Catalog.ByAgeBand(band)))
			return nil
		}

		for _, band := range catalog.AgeBands() {
			fmt.Fprintf(out(cmd), "  %-6s  %-11s  %d stories\n",
				band, band.DisplayName(), len(svc.Catalog.ByAgeBand(band)))
		}
		if band, ok := svc.Profiles.SelectedAgeBand(ctx); ok {
			fmt.Fprintf(out(cmd), "\nSelected: %s\n", band.DisplayName())
		} else {
			fmt.Fprintln(out(cmd), "\nNo age group selected.")
		}
		return nil
	},
}
