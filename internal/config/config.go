// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gptchat.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/util"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvAPIKey   = "OPENAI_API_KEY"
	EnvModel    = "OPENAI_MODEL"
	EnvBaseURL  = "OPENAI_BASE_URL"
	EnvLogLevel = "GPTCHAT_LOG_LEVEL"
	EnvLogFile  = "GPTCHAT_LOG_FILE"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gptchat configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	// Completion endpoint configuration
	Completion CompletionConfig `toml:"completion" json:"completion" yaml:"completion"`

	// Dialog hosting the chat widget
	Dialog DialogConfig `toml:"dialog" json:"dialog" yaml:"dialog"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// CompletionConfig contains the chat-completion endpoint settings.
type CompletionConfig struct {
	// APIKey is the bearer credential. Prefer OPENAI_API_KEY over storing it here.
	APIKey string `toml:"api_key" json:"api_key" yaml:"api_key"`
	// Model is the model identifier sent with every request
	Model string `toml:"model" json:"model" yaml:"model"`
	// BaseURL is the endpoint base; /chat/completions is appended
	BaseURL string `toml:"base_url" json:"base_url" yaml:"base_url"`
}

// DialogConfig contains the settings of the modal dialog.
type DialogConfig struct {
	Title           string `toml:"title" json:"title" yaml:"title"`
	ShowCloseButton bool   `toml:"show_close_button" json:"show_close_button" yaml:"show_close_button"`
	// OpenOnStart opens the dialog as soon as the TUI starts
	OpenOnStart bool `toml:"open_on_start" json:"open_on_start" yaml:"open_on_start"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
	// RenderMarkdown renders assistant replies as markdown
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown" yaml:"render_markdown"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is a logrus level name
	Level string `toml:"level" json:"level" yaml:"level"`
	// File receives log output; empty means stderr for CLI commands and
	// no output while the TUI is running
	File string `toml:"file" json:"file" yaml:"file"`
	// JSON selects the JSON log formatter
	JSON bool `toml:"json" json:"json" yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Completion: CompletionConfig{
			APIKey:  "",
			Model:   "gpt-3.5-turbo",
			BaseURL: "https://api.openai.com/v1",
		},
		Dialog: DialogConfig{
			Title:           "Chat",
			ShowCloseButton: true,
			OpenOnStart:     false,
		},
		UI: UIConfig{
			Theme:          "auto",
			RenderMarkdown: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the gptchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gptchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// candidatePaths lists the default config files in lookup order.
func candidatePaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions tightens config files that may hold an API key
// to 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first default config file that exists,
// applies environment overrides, fills defaults and validates. With no config
// file present the defaults are used. The second return value is the file
// that was read, or "".
func Load() (*Config, string, error) {
	paths, err := candidatePaths()
	if err != nil {
		cfg, verr := finish(Default())
		return cfg, "", errors.Join(err, verr)
	}
	for _, path := range paths {
		if _, statErr := os.Stat(path); statErr == nil {
			cfg, err := LoadFromPath(path)
			return cfg, path, err
		}
	}
	cfg, err := finish(Default())
	return cfg, "", err
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension: .json, .yaml/.yml, anything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finish(cfg)
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - OPENAI_API_KEY: overrides completion.api_key
//   - OPENAI_MODEL: overrides completion.model
//   - OPENAI_BASE_URL: overrides completion.base_url
//   - GPTCHAT_LOG_LEVEL: overrides logging.level
//   - GPTCHAT_LOG_FILE: overrides logging.file
func (c *Config) ApplyEnvOverrides() {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		c.Completion.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv(EnvModel)); model != "" {
		c.Completion.Model = model
	}
	if base := strings.TrimSpace(os.Getenv(EnvBaseURL)); base != "" {
		c.Completion.BaseURL = base
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.Logging.Level = level
	}
	if file := strings.TrimSpace(os.Getenv(EnvLogFile)); file != "" {
		c.Logging.File = file
	}
}

// SetDefaults fills empty string fields with their default values.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	c.Completion.APIKey = strings.TrimSpace(c.Completion.APIKey)
	if strings.TrimSpace(c.Completion.Model) == "" {
		c.Completion.Model = defaults.Completion.Model
	}
	if strings.TrimSpace(c.Completion.BaseURL) == "" {
		c.Completion.BaseURL = defaults.Completion.BaseURL
	}
	c.Completion.BaseURL = strings.TrimSuffix(c.Completion.BaseURL, "/")
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// HasCredential reports whether an API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.Completion.APIKey) != ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Completion.Model) == "" {
		errs = append(errs, ValidationError{
			Field:   "completion.model",
			Message: "must not be empty",
		})
	}

	if u, err := url.Parse(c.Completion.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "completion.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "completion.base_url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got '%s'", c.Completion.BaseURL),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) (string, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if err := EnsureConfigDir(); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return path, SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# gptchat configuration file\n")
	buf.WriteString("#\n")
	buf.WriteString("# The API key is best supplied through " + EnvAPIKey + ".\n")
	buf.WriteString("# " + EnvModel + " and " + EnvBaseURL + " override the values below.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DISPLAY
// =============================================================================

// Redacted returns a copy of the config safe for display.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Completion.APIKey != "" {
		cp.Completion.APIKey = "[REDACTED]"
	}
	return &cp
}

// String returns the TOML form of the redacted config.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c.Redacted()); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}
