package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalyx/translate/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerInvalidLevel(t *testing.T) {
	t.Parallel()
	manager := NewManager(&config.Debug{LogLevel: "loud"}, &bytes.Buffer{})

	_, err := manager.GetLogger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestGetLoggerConsoleLevel(t *testing.T) {
	t.Parallel()
	var console bytes.Buffer
	manager := NewManager(&config.Debug{LogLevel: "warn"}, &console)

	logger, err := manager.GetLogger()
	require.NoError(t, err)

	logger.Info("hidden message")
	logger.Warn("visible message")

	assert.NotContains(t, console.String(), "hidden message")
	assert.Contains(t, console.String(), "visible message")
	assert.Contains(t, console.String(), manager.GetInstanceID())
	assert.Empty(t, manager.GetCurrentSessionDir())
}

func TestGetLoggerSessionFile(t *testing.T) {
	t.Parallel()
	logDir := t.TempDir()
	manager := NewManager(&config.Debug{LogLevel: "error", LogDir: logDir, MaxLogsToKeep: 5}, &bytes.Buffer{})

	logger, err := manager.GetLogger()
	require.NoError(t, err)

	logger.Debug("written to the session file")
	require.NoError(t, logger.Sync())

	sessionDir := manager.GetCurrentSessionDir()
	assert.Equal(t, logDir, filepath.Dir(sessionDir))
	assert.Contains(t, filepath.Base(sessionDir), manager.GetInstanceID()[:8])

	contents, err := os.ReadFile(filepath.Join(sessionDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "written to the session file")
}

func TestRotateLogSessions(t *testing.T) {
	t.Parallel()
	logDir := t.TempDir()

	// Old sessions with increasing modification times
	base := time.Now().Add(-time.Hour)
	names := []string{"session-a", "session-b", "session-c", "session-d"}
	for i, name := range names {
		dir := filepath.Join(logDir, name)
		require.NoError(t, os.Mkdir(dir, 0o755))
		modTime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(dir, modTime, modTime))
	}

	manager := NewManager(&config.Debug{LogLevel: "info", LogDir: logDir, MaxLogsToKeep: 3}, &bytes.Buffer{})
	_, err := manager.GetLogger()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	var remaining []string
	for _, entry := range entries {
		remaining = append(remaining, entry.Name())
	}
	assert.Len(t, remaining, 3)
	assert.Contains(t, remaining, "session-c")
	assert.Contains(t, remaining, "session-d")
	assert.Contains(t, remaining, filepath.Base(manager.GetCurrentSessionDir()))
}

func TestRotateLogSessionsDisabled(t *testing.T) {
	t.Parallel()
	logDir := t.TempDir()
	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, os.Mkdir(filepath.Join(logDir, name), 0o755))
	}

	manager := NewManager(&config.Debug{LogLevel: "info", LogDir: logDir}, &bytes.Buffer{})
	_, err := manager.GetLogger()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRotateLogSessionsSkipsUnreadableEntries(t *testing.T) {
	t.Parallel()
	logDir := t.TempDir()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"session-a", "session-b"} {
		dir := filepath.Join(logDir, name)
		require.NoError(t, os.Mkdir(dir, 0o755))
		modTime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(dir, modTime, modTime))
	}

	// A dangling link is listed by the directory but cannot be stat'ed
	require.NoError(t, os.Symlink(filepath.Join(logDir, "missing"), filepath.Join(logDir, "session-gone")))

	manager := NewManager(&config.Debug{LogLevel: "info", LogDir: logDir, MaxLogsToKeep: 2}, &bytes.Buffer{})
	require.NotPanics(t, func() {
		_, err := manager.GetLogger()
		require.NoError(t, err)
	})

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	var remaining []string
	for _, entry := range entries {
		remaining = append(remaining, entry.Name())
	}
	assert.ElementsMatch(t, []string{
		"session-b",
		"session-gone",
		filepath.Base(manager.GetCurrentSessionDir()),
	}, remaining)
}
