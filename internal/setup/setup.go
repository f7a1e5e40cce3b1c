package setup

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jaxron/axonet/pkg/client/middleware"
	"github.com/robalyx/translate/internal/setup/config"
	"github.com/robalyx/translate/internal/setup/telemetry"
	"github.com/robalyx/translate/internal/translator"
	"go.uber.org/zap"
)

// Options overrides configuration values from the command line.
// Zero values leave the loaded configuration untouched.
type Options struct {
	ConfigDir string
	Timeout   time.Duration
	LogLevel  string
	LogDir    string
	Console   io.Writer
	// Middlewares are appended to every translator's HTTP client.
	Middlewares []middleware.Middleware
}

// App bundles the dependencies shared by a single command run.
type App struct {
	Config     *config.Config     // Application configuration
	ConfigPath string             // Config file in use, empty when running on defaults
	Logger     *zap.Logger        // Main application logger
	LogManager *telemetry.Manager // Log management system
	opts       Options
}

// InitializeApp loads configuration, applies command line overrides and
// sets up logging.
func InitializeApp(opts Options) (*App, error) {
	// Load app configuration
	cfg, configPath, err := config.LoadConfig(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	// Command line flags take precedence over the config file
	if opts.Timeout > 0 {
		cfg.RequestTimeout = int(opts.Timeout / time.Millisecond)
	}
	if opts.LogLevel != "" {
		cfg.Debug.LogLevel = opts.LogLevel
	}
	if opts.LogDir != "" {
		cfg.Debug.LogDir = opts.LogDir
	}

	if opts.Console == nil {
		opts.Console = os.Stderr
	}

	logManager := telemetry.NewManager(&cfg.Debug, opts.Console)

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		logger.Debug("Loaded config file", zap.String("path", configPath))
	}

	return &App{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		LogManager: logManager,
		opts:       opts,
	}, nil
}

// NewTranslator creates a translator for lang using the configured endpoint,
// timeout and identity pool.
func (s *App) NewTranslator(lang string) *translator.Translator {
	return translator.New(lang,
		translator.WithEndpoint(s.Config.Endpoint),
		translator.WithTimeout(s.Config.Timeout()),
		translator.WithUserAgents(s.Config.UserAgents),
		translator.WithLogger(s.Logger.Named("translator")),
		translator.WithMiddleware(s.opts.Middlewares...),
	)
}

// Cleanup flushes buffered logs.
func (s *App) Cleanup() {
	// Syncing stderr fails on some platforms, only session files matter here
	if err := s.Logger.Sync(); err != nil && s.LogManager.GetCurrentSessionDir() != "" {
		_, _ = fmt.Fprintf(s.opts.Console, "Failed to sync logger: %v\n", err)
	}
}
