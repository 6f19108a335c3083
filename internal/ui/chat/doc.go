// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat widget mounted inside the gptchat dialog.

The widget is a Bubble Tea component made of a scrolling transcript
(viewport), a multi-line input (textarea), a waiting indicator (spinner) and
an error line. Its state lives in a conversation.Store; the widget only
translates key presses into store transitions and renders the result.

# Submitting

Ctrl+S or Alt+Enter submits the input. Enter inserts a newline. Submission is
refused while a request is outstanding or when the input is blank. The
completion runs as a tea.Cmd and comes back as a ResultMsg:

	Submit -> store.Submit -> completeCmd -> ResultMsg -> store.Resolve

# Open state

The widget does not know about the dialog. Its host calls SetOpen with the
dialog's open flag; an open -> closed transition resets the conversation.
A ResultMsg arriving after the reset is dropped by the store.

# Usage

	w := chat.New(chat.Options{
		Theme:     theme,
		Completer: client,
		Logger:    log,
	})
	w.SetSize(dialog.ContentSize())
	w, cmd := w.SetOpen(true)
*/
package chat
