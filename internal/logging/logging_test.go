package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, cleanup, err := New(Options{
		Config: config.LogConfig{Level: "info", MaxSizeMB: 1},
		File:   path,
	})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("story completed")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "story completed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "ts")
}

func TestNew_VerboseTeesToStderr(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	log, cleanup, err := New(Options{
		Config:  config.LogConfig{Level: "warn"},
		File:    path,
		Verbose: true,
		Stderr:  &buf,
	})
	require.NoError(t, err)

	log.Debug("streak advanced")
	cleanup()

	assert.Contains(t, buf.String(), "streak advanced", "verbose output shows debug")
	// lumberjack only creates the file on first write.
	data, err := os.ReadFile(path)
	if err != nil {
		assert.True(t, os.IsNotExist(err))
	}
	assert.Empty(t, strings.TrimSpace(string(data)), "file keeps its own level")
}

func TestNew_NoOutputs(t *testing.T) {
	log, cleanup, err := New(Options{})
	require.NoError(t, err)
	defer cleanup()
	log.Info("dropped")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Config: config.LogConfig{Level: "chatty"}})
	assert.Error(t, err)
}
