package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/translate/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFileName is the name of the log file written in each session directory.
const LogFileName = "translate.log"

// Manager builds the application logger. Console output goes to stderr so
// stdout only carries translations. When a log directory is configured, each
// run also writes to its own timestamped session directory.
type Manager struct {
	instanceID        string    // Unique identifier for this program run
	currentSessionDir string    // Path to the current session's log directory
	logDir            string    // Base directory for session logs, empty to disable
	level             string    // Logging level (debug, info, warn, error)
	maxLogsToKeep     int       // Maximum number of log sessions to retain
	console           io.Writer // Console destination
}

// NewManager creates a new Manager instance.
func NewManager(debugCfg *config.Debug, console io.Writer) *Manager {
	if console == nil {
		console = os.Stderr
	}

	return &Manager{
		instanceID:    uuid.New().String(),
		logDir:        debugCfg.LogDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		console:       console,
	}
}

// GetLogger initializes the application logger.
func (lm *Manager) GetLogger() (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(zapcore.AddSync(lm.console)),
			zapLevel,
		),
	}

	// Session log files are written at debug level regardless of console level
	if lm.logDir != "" {
		if err := lm.setupLogDirectories(); err != nil {
			return nil, err
		}

		path := filepath.Join(lm.currentSessionDir, LogFileName)
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(file),
			zapcore.DebugLevel,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).With(zap.String("instance_id", lm.instanceID)), nil
}

// GetCurrentSessionDir returns the current session directory, or an empty
// string when session logs are disabled.
func (lm *Manager) GetCurrentSessionDir() string {
	return lm.currentSessionDir
}

// GetInstanceID returns the unique instance identifier for this program run.
func (lm *Manager) GetInstanceID() string {
	return lm.instanceID
}

// setupLogDirectories ensures the base directory exists, rotates old
// sessions, and creates a new session directory.
func (lm *Manager) setupLogDirectories() error {
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Make room for the session about to be created
	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	// Sessions from the same second are told apart by instance ID
	name := time.Now().Format("2006-01-02_15-04-05") + "_" + lm.instanceID[:8]
	lm.currentSessionDir = filepath.Join(lm.logDir, name)
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// rotateLogSessions removes the oldest sessions so that, with the new
// session, at most maxLogsToKeep remain.
func (lm *Manager) rotateLogSessions() error {
	if lm.maxLogsToKeep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return err
	}

	// Sessions that vanish before they can be inspected are skipped
	type session struct {
		path    string
		modTime time.Time
	}
	sessions := make([]session, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		sessions = append(sessions, session{path: path, modTime: info.ModTime()})
	}

	keep := lm.maxLogsToKeep - 1
	if len(sessions) <= keep {
		return nil
	}

	// Sort sessions by modification time (oldest first)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].modTime.Before(sessions[j].modTime)
	})

	for _, s := range sessions[:len(sessions)-keep] {
		if err := os.RemoveAll(s.path); err != nil {
			return err
		}
	}

	return nil
}
