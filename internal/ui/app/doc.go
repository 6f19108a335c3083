// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the top-level Bubble Tea model of the gptchat TUI: a
// page with an "Open chat" button, and the modal dialog hosting the chat
// widget. The page owns the dialog's open flag and passes it to the widget,
// which resets itself whenever the dialog closes.
package app
