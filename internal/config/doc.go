// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gptchat.
//
// Configuration is read once at startup and passed explicitly to the
// components that need it. Sources, lowest precedence first:
//
//   - Built-in defaults (Default)
//   - ~/.gptchat/config.toml, config.json or config.yaml, or the file named
//     with --config
//   - Environment variables (ApplyEnvOverrides)
//
// A missing API key is not a validation error: the chat still starts and
// every submission fails with a visible message.
package config
