// Package config handles configuration for regchat.
//
// Configuration is read from ~/.regchat/config.toml, falling back to
// ~/.regchat/config.json, falling back to built-in defaults. Environment variables
// override file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/diogo/regchat/internal/models"
)

// Environment variables that override file values
const (
	EnvBaseURL      = "REGCHAT_BASE_URL"
	EnvGlamourStyle = "GLAMOUR_STYLE"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" toml:"style"`                           // "dark", "light", "dracula", "notty", ...
	EnableEmoji      bool   `json:"enable_emoji" toml:"enable_emoji"`             // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" toml:"preserve_newlines"`   // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap" toml:"table_wrap"`                 // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links" toml:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// BaseURL is the root of the regulation lookup backend
	BaseURL string `json:"base_url" toml:"base_url"`
	// RequestTimeoutSeconds bounds every backend call. Zero disables the bound.
	RequestTimeoutSeconds int `json:"request_timeout_seconds" toml:"request_timeout_seconds"`
	// Verbose switches the log file to debug level.
	Verbose         bool           `json:"verbose" toml:"verbose"`
	LogFile         string         `json:"log_file,omitempty" toml:"log_file"`
	CopyToClipboard bool           `json:"copy_to_clipboard" toml:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty" toml:"tui_theme"`
	Markdown        MarkdownConfig `json:"markdown" toml:"markdown"`

	// Source is the file the configuration was read from ("" for defaults)
	Source string `json:"-" toml:"-"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BaseURL:               models.DefaultBaseURL,
		RequestTimeoutSeconds: 120,
		Verbose:               false,
		LogFile:               filepath.Join(homeDir, ".regchat", "regchat.log"),
		CopyToClipboard:       false,
		TUITheme:              "tokyonight",
		Markdown:              DefaultMarkdownConfig(),
	}
}

// RequestTimeout returns the per-request bound as a duration
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks the fields the client cannot work without
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".regchat"), nil
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

// GetConfigPath returns the path to the JSON config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetTOMLConfigPath returns the path to the TOML config file
func GetTOMLConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides.
// A missing file is not an error; a malformed one returns defaults plus the error.
func LoadConfig() (Config, error) {
	cfg, err := LoadStoredConfig()
	ApplyEnv(&cfg)
	return cfg, err
}

// LoadStoredConfig loads the configuration from disk without environment
// overrides, so that it can be edited and saved back.
func LoadStoredConfig() (Config, error) {
	tomlPath, err := GetTOMLConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	jsonPath, _ := GetConfigPath()

	for _, path := range []string{tomlPath, jsonPath} {
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadConfigFrom(path)
	}

	return DefaultConfig(), nil
}

// LoadConfigFrom reads a single config file, choosing the decoder by extension
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Source = path
	return cfg, nil
}

// ApplyEnv overlays environment variable overrides onto cfg
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGlamourStyle)); v != "" {
		cfg.Markdown.Style = v
	}
}

// SaveConfig saves the configuration to disk as TOML
func SaveConfig(cfg Config) (string, error) {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, "config.toml")

	f, err := os.OpenFile(configPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	return configPath, nil
}
