// Package logging builds the application's zap logger. Logs go to a rotated
// file so the TUI keeps the terminal; verbose mode also tees to stderr.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bigfeelings/bigfeelings/internal/config"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// Options controls where logs go.
type Options struct {
	Config config.LogConfig
	// File is the resolved log path; empty disables file output.
	File    string
	Verbose bool
	// Stderr receives verbose output; defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a logger and a function that flushes and closes it.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zap.InfoLevel
	if opts.Config.Level != "" {
		l, err := zapcore.ParseLevel(opts.Config.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	var (
		cores   []zapcore.Core
		closers []io.Closer
	)
	if opts.File != "" {
		if err := store.EnsureDir(opts.File); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.Config.MaxSizeMB,
			MaxBackups: opts.Config.MaxBackups,
			MaxAge:     opts.Config.MaxAgeDays,
			Compress:   opts.Config.Compress,
		}
		closers = append(closers, rotator)

		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "ts"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotator), level))
	}
	if opts.Verbose {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.DebugLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	cleanup := func() {
		_ = log.Sync()
		for _, c := range closers {
			_ = c.Close()
		}
	}
	return log, cleanup, nil
}
