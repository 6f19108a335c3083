// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the gptchat TUI.

# Dialog (dialog.go)

Dialog is a modal host: a bordered box centered on the screen with a title
bar and an optional close button. It owns only its open flag and geometry;
the content is rendered by the caller and passed to View.

The dialog closes on:

	Esc              - DialogCloseEscape
	Ctrl+X           - DialogCloseButton (the close button's shortcut)
	click on [x]     - DialogCloseButton
	click outside    - DialogCloseOutside

Closing emits a DialogClosedMsg so the parent can propagate the new state to
whatever is mounted inside.

	dialog := components.NewDialog(theme, "Chat", true)
	dialog.SetSize(width, height)
	dialog.Open()
	w, h := dialog.ContentSize()
	view := dialog.View(body)

# Markdown (markdown.go)

Markdown wraps a glamour renderer, rebuilding it when the wrap width changes
and falling back to the raw text when rendering fails.
*/
package components
