package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level     string
		verbosity int
		want      slog.Level
	}{
		{"", 0, slog.LevelWarn},
		{"warn", 0, slog.LevelWarn},
		{"error", 0, slog.LevelError},
		{"info", 0, slog.LevelInfo},
		{"debug", 0, slog.LevelDebug},
		{"warn", 1, slog.LevelInfo},
		{"error", 2, slog.LevelDebug},
		{"debug", 1, slog.LevelDebug},
	}

	for _, tt := range tests {
		got := ParseLevel(tt.level, tt.verbosity)
		assert.Equal(t, tt.want, got, "level=%q verbosity=%d", tt.level, tt.verbosity)
	}
}

func TestSetupLogger_FileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jiraclui.log")

	logger, closer, err := SetupLogger(Options{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Info("session started", "projects", 2)
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.Contains(t, string(data), "projects=2")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLogger_Console(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiraclui.log")
	var stderr bytes.Buffer

	logger, closer, err := SetupLogger(Options{File: path, Level: "warn", Console: true, Stderr: &stderr})
	require.NoError(t, err)
	defer closer.Close()

	logger.With("ticket", "A-1").Warn("lookup failed")
	logger.Info("not shown")

	assert.Contains(t, stderr.String(), "lookup failed")
	assert.Contains(t, stderr.String(), "ticket=A-1")
	assert.NotContains(t, stderr.String(), "not shown")
	assert.NotContains(t, stderr.String(), "\x1b[", "non-tty output must not be coloured")
}
