// Package config handles configuration for coinchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/diogo/coinchat/internal/models"
)

// Environment overrides
const (
	EnvServerURL = "COINCHAT_SERVER_URL"
	EnvProxy     = "COINCHAT_PROXY"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" yaml:"style"`                         // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji" yaml:"enable_emoji"`           // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" yaml:"preserve_newlines"` // Preserve original line breaks
}

// LoggingConfig configures the diagnostic log
type LoggingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Level   string `json:"level" yaml:"level"`
	File    string `json:"file" yaml:"file"` // relative paths resolve against the config dir
}

// Config represents the user configuration
type Config struct {
	// ServerURL is the scheme and host of the analysis service.
	ServerURL string `json:"server_url" yaml:"server_url"`
	// Interval and LookbackPeriod are sent only when set.
	Interval       string `json:"interval,omitempty" yaml:"interval,omitempty"`
	LookbackPeriod int    `json:"lookback_period,omitempty" yaml:"lookback_period,omitempty"`
	// TimeoutSeconds bounds each request. 0 waits forever.
	TimeoutSeconds  int            `json:"timeout_seconds" yaml:"timeout_seconds"`
	Proxy           string         `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Verbose         bool           `json:"verbose" yaml:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty" yaml:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty" yaml:"markdown,omitempty"`
	Logging         LoggingConfig  `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:       models.DefaultServerURL,
		TimeoutSeconds:  0,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    "coinchat.log",
		},
	}
}

// AnalyzeOptions returns the optional request fields from the config
func (c Config) AnalyzeOptions() models.AnalyzeOptions {
	return models.AnalyzeOptions{
		Interval:       c.Interval,
		LookbackPeriod: c.LookbackPeriod,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".coinchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg, err := LoadFile()
	applyEnv(&cfg)
	return cfg, err
}

// LoadFile loads the configuration file without environment overrides
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvServerURL)); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvProxy)); v != "" {
		cfg.Proxy = v
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps the keys accepted by Set to their parsers
var setters = map[string]func(cfg *Config, value string) error{
	"server_url": func(cfg *Config, v string) error {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("server_url must start with http:// or https://")
		}
		cfg.ServerURL = v
		return nil
	},
	"interval": func(cfg *Config, v string) error {
		cfg.Interval = v
		return nil
	},
	"lookback_period": func(cfg *Config, v string) error {
		n, err := parseNonNegative(v)
		cfg.LookbackPeriod = n
		return err
	},
	"timeout_seconds": func(cfg *Config, v string) error {
		n, err := parseNonNegative(v)
		cfg.TimeoutSeconds = n
		return err
	},
	"proxy": func(cfg *Config, v string) error {
		cfg.Proxy = v
		return nil
	},
	"verbose": func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		cfg.Verbose = b
		return err
	},
	"copy_to_clipboard": func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		cfg.CopyToClipboard = b
		return err
	},
	"tui_theme": func(cfg *Config, v string) error {
		cfg.TUITheme = v
		return nil
	},
	"markdown.style": func(cfg *Config, v string) error {
		cfg.Markdown.Style = v
		return nil
	},
	"logging.enabled": func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		cfg.Logging.Enabled = b
		return err
	},
	"logging.level": func(cfg *Config, v string) error {
		cfg.Logging.Level = v
		return nil
	},
	"logging.file": func(cfg *Config, v string) error {
		cfg.Logging.File = v
		return nil
	},
}

// Set updates a single key of cfg from its string form
func Set(cfg *Config, key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (available: %s)", key, strings.Join(Keys(), ", "))
	}

	next := *cfg
	if err := setter(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*cfg = next
	return nil
}

// Keys returns the keys accepted by Set, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseNonNegative(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}
