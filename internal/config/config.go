// Package config provides configuration management for the journal tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "roadbook/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Export  ExportConfig  `mapstructure:"export"`
}

// JournalConfig holds journal-related configuration.
type JournalConfig struct {
	Dir        string `mapstructure:"dir"`         // default journal directory
	Backup     bool   `mapstructure:"backup"`      // write ~ backups before overwriting
	CopyGraphs bool   `mapstructure:"copy_graphs"` // copy graph images on save-as
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	JSONOutput   bool   `mapstructure:"json_output"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// ExportConfig holds SQLite export configuration.
type ExportConfig struct {
	Path string `mapstructure:"path"` // database file, relative paths resolve against the journal
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/roadbook"
	}
	return filepath.Join(home, ".config", "roadbook")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfigInvalid, err.Error())
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal.backup", true)
	v.SetDefault("journal.copy_graphs", true)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
	v.SetDefault("export.path", "roadbook.db")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROADBOOK_DIR"); v != "" {
		cfg.Journal.Dir = v
	}
	if v := os.Getenv("ROADBOOK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.UI.ColorEnabled = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", c.Logging.Level)
	}
	if c.Logging.MaxSize < 0 {
		return fmt.Errorf("logging max_size must be non-negative")
	}
	if c.Export.Path == "" {
		return fmt.Errorf("export.path must not be empty")
	}
	return nil
}
