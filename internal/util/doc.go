// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file and string helpers shared by gptchat
// packages: atomic file writes for the config file and display-width aware
// truncation for terminal rendering.
package util
