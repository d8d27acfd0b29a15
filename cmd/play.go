package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive stories app",
	RunE:  runPlay,
}

// runPlay launches the TUI over the opened services.
func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !svc.Coach.Enabled() {
		logger.Info("coach disabled; set llm.provider to enable conversation ideas")
	}
	return app.Run(ctx, svc)
}
