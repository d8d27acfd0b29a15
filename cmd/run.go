package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/config"
	"github.com/bigfeelings/bigfeelings/internal/logging"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// Opened by openServices for the running command.
var (
	cfg     *config.Config
	svc     *services.Services
	logger  = zap.NewNop()
	closers []func()
)

// openServices loads configuration, starts logging and opens the store.
// --db wins over every other store setting.
func openServices(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[annotationNoServices] != "" {
		return nil
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		c.Store.Backend = store.BackendSQLite
		c.Store.Path = db
	}

	logFile, err := c.LogFile()
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, closeLog, err := logging.New(logging.Options{Config: c.Log, File: logFile, Verbose: verbose})
	if err != nil {
		return err
	}
	closers = append(closers, closeLog)

	s, err := services.Open(cmd.Context(), c, log)
	if err != nil {
		return err
	}
	closers = append(closers, func() {
		if err := s.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	})

	cfg, svc, logger = c, s, log
	log.Debug("command started", zap.String("command", cmd.CommandPath()), zap.String("config", c.File))
	return nil
}

// closeServices releases in reverse order of opening.
func closeServices() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
	cfg, svc, logger = nil, nil, zap.NewNop()
}

// currentChild resolves --child, falling back to the selected child.
func currentChild(cmd *cobra.Command) (child.Child, error) {
	ref, _ := cmd.Flags().GetString("child")
	if ref == "" {
		c, err := svc.ResolveChild(cmd.Context(), "")
		if errors.Is(err, services.ErrNoChild) {
			return child.Child{}, fmt.Errorf("%w: run `bigfeelings child select` or pass --child", err)
		}
		return c, err
	}
	return findChild(cmd, ref)
}

// findChild looks ref up as an id, then as a case-insensitive name.
func findChild(cmd *cobra.Command, ref string) (child.Child, error) {
	ctx := cmd.Context()
	if c, err := svc.Profiles.Get(ctx, ref); err == nil {
		return c, nil
	}
	var matches []child.Child
	for _, c := range svc.Profiles.List(ctx) {
		if strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return child.Child{}, fmt.Errorf("%w: %q", child.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return child.Child{}, fmt.Errorf("%d children are named %q; use the id", len(matches), ref)
	}
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// heading prints a styled line, downsampled for the output.
func heading(cmd *cobra.Command, s string) {
	lipgloss.Fprintln(out(cmd), theme.Heading.Render(s))
}

func rule(cmd *cobra.Command, n int) {
	fmt.Fprintln(out(cmd), strings.Repeat("─", n))
}
