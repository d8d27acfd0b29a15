package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// annotationNoServices marks commands that run without opening the store.
const annotationNoServices = "bigfeelings/no-services"

var rootCmd = &cobra.Command{
	Use:   "bigfeelings",
	Short: "Stories about feelings for kids",
	Long: "Big Feelings: short animal stories with choices that help children " +
		"(ages 4-12) name their feelings and practice kind responses.",
	SilenceUsage:      true,
	PersistentPreRunE: openServices,
	RunE:              runPlay,
}

// Execute runs the root command and releases whatever it opened.
func Execute() error {
	return execute(context.Background())
}

func execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BIGFEELINGS_DB and config)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("child", "", "Child id or name (defaults to the selected child)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr as well as the log file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(childCmd)
	rootCmd.AddCommand(ageCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(growthCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
