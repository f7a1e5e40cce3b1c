package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrInvalidConfig         = errors.New("invalid config file")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// FileName is the name of the config file looked up in each config path.
const FileName = "translate.toml"

// CurrentVersion is the current version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	Version        int      `koanf:"version"`
	Endpoint       string   `koanf:"endpoint"`        // Translate endpoint URL
	RequestTimeout int      `koanf:"request_timeout"` // Request timeout in milliseconds
	DefaultTarget  string   `koanf:"default_target"`  // Target used when --target is auto
	AutoSource     string   `koanf:"auto_source"`     // Detected language that triggers a re-translate when --target is auto
	FallbackTarget string   `koanf:"fallback_target"` // Re-translate target when --source is auto
	UserAgents     []string `koanf:"user_agents"`     // Identity pool override
	Debug          Debug    `koanf:"debug"`
}

// Debug contains debug-related configuration.
type Debug struct {
	LogLevel      string `koanf:"log_level"`        // Log level (debug, info, warn, error)
	LogDir        string `koanf:"log_dir"`          // Session log directory, empty for stderr only
	MaxLogsToKeep int    `koanf:"max_logs_to_keep"` // Maximum log sessions to keep
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Version:        CurrentVersion,
		Endpoint:       "https://translate.googleapis.com/translate_a/single",
		RequestTimeout: 15000,
		DefaultTarget:  "en",
		AutoSource:     "zh-CN",
		FallbackTarget: "en",
		Debug: Debug{
			LogLevel:      "warn",
			MaxLogsToKeep: 10,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// LoadConfig loads the configuration from the first config path holding a
// config file. The given directory, if any, is searched first. A missing file
// is not an error; the defaults are returned along with an empty path.
func LoadConfig(dir string) (*Config, string, error) {
	k := koanf.New(".")

	// Define config search paths
	var configPaths []string
	if dir != "" {
		configPaths = append(configPaths, dir)
	}
	configPaths = append(configPaths, ".translate")
	if homeDir, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(homeDir, ".translate"))
	}
	configPaths = append(configPaths, "/etc/translate")

	config := Default()

	var usedConfigPath string
	for _, path := range configPaths {
		configPath := filepath.Join(path, FileName)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrInvalidConfig, configPath, err)
		}
		usedConfigPath = configPath
		break
	}

	if usedConfigPath == "" {
		return config, "", nil
	}

	// Keys absent from the file keep their defaults
	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version); err != nil {
		return nil, "", err
	}

	return config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current int) error {
	if current != CurrentVersion {
		return fmt.Errorf("%w: %s (got: %d, expected: %d)",
			ErrConfigVersionMismatch, FileName, current, CurrentVersion)
	}
	return nil
}
