// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp home and clears the
// environment variables the package reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{EnvAPIKey, EnvModel, EnvBaseURL, EnvLogLevel, EnvLogFile} {
		t.Setenv(name, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	require.Equal(t, "gpt-3.5-turbo", cfg.Completion.Model)
	require.Equal(t, "https://api.openai.com/v1", cfg.Completion.BaseURL)
	require.Empty(t, cfg.Completion.APIKey)
	require.True(t, cfg.Dialog.ShowCloseButton)
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.HasCredential())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load()

	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, Default().Completion, cfg.Completion)
}

// =============================================================================
// FILE FORMATS
// =============================================================================

func TestLoadFromPath_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", `
[completion]
model = "gpt-4o-mini"

[dialog]
title = "Ask me"
show_close_button = false
`},
		{"json", "config.json", `{"completion": {"model": "gpt-4o-mini"}, "dialog": {"title": "Ask me", "show_close_button": false}}`},
		{"yaml", "config.yaml", `
completion:
  model: gpt-4o-mini
dialog:
  title: Ask me
  show_close_button: false
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := isolate(t)
			path := filepath.Join(home, tc.file)
			writeFile(t, path, tc.content)

			cfg, err := LoadFromPath(path)
			require.NoError(t, err)

			require.Equal(t, "gpt-4o-mini", cfg.Completion.Model)
			require.Equal(t, "Ask me", cfg.Dialog.Title)
			require.False(t, cfg.Dialog.ShowCloseButton)
			// Unset fields keep their defaults.
			require.Equal(t, "https://api.openai.com/v1", cfg.Completion.BaseURL)
			require.True(t, cfg.UI.RenderMarkdown)
		})
	}
}

func TestLoad_FindsDefaultFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".gptchat", "config.toml")
	writeFile(t, path, "[completion]\nmodel = \"from-file\"\n")

	cfg, used, err := Load()

	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, "from-file", cfg.Completion.Model)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions are tightened on load")
}

func TestLoadFromPath_DecodeError(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "broken.toml")
	writeFile(t, path, "[completion\nmodel=")

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides_BeatsFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.toml")
	writeFile(t, path, `
[completion]
api_key = "sk-file"
model = "from-file"
base_url = "https://file.example/v1"
`)
	t.Setenv(EnvAPIKey, "sk-env")
	t.Setenv(EnvModel, "from-env")
	t.Setenv(EnvBaseURL, "http://localhost:8080/v1/")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "sk-env", cfg.Completion.APIKey)
	require.Equal(t, "from-env", cfg.Completion.Model)
	require.Equal(t, "http://localhost:8080/v1", cfg.Completion.BaseURL)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.True(t, cfg.HasCredential())
}

func TestApplyEnvOverrides_BlankModelFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv(EnvModel, "   ")

	cfg, _, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gpt-3.5-turbo", cfg.Completion.Model)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"relative base url", func(c *Config) { c.Completion.BaseURL = "api.openai.com" }, "completion.base_url"},
		{"ftp base url", func(c *Config) { c.Completion.BaseURL = "ftp://example.com" }, "completion.base_url"},
		{"empty model", func(c *Config) { c.Completion.Model = " " }, "completion.model"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

// =============================================================================
// SAVE / DISPLAY
// =============================================================================

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Completion.Model = "gpt-4o"
	cfg.Dialog.OpenOnStart = true

	path, err := Save(cfg)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", loaded.Completion.Model)
	require.True(t, loaded.Dialog.OpenOnStart)
}

func TestConfig_StringRedactsKey(t *testing.T) {
	cfg := Default()
	cfg.Completion.APIKey = "sk-secret-value"

	out := cfg.String()

	require.NotContains(t, out, "sk-secret-value")
	require.Contains(t, out, "[REDACTED]")
	require.Equal(t, "sk-secret-value", cfg.Completion.APIKey, "original is untouched")
}
