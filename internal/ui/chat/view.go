// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gptchat/internal/model"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

const emptyTranscriptHint = "Type a message and press Ctrl+S to send it. The conversation will appear here."

// View renders the widget.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.theme.InputBox.Width(m.width).Render(m.input.View()),
		m.renderStatusLine(),
	)
}

func (m Model) renderTranscript() string {
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		return m.theme.EmptyHint.Width(m.width).Render(emptyTranscriptHint)
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg model.Message) string {
	var label string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
	default:
		label = m.theme.AssistantLabel.Render(msg.Role.DisplayName())
	}

	bodyWidth := m.width - 2
	var body string
	switch {
	case msg.IsError:
		body = m.theme.ErrorBody.Width(bodyWidth).Render(msg.Content)
	case msg.Role == model.RoleAssistant && m.markdown != nil:
		body = m.theme.MessageBody.Render(m.markdown.Render(msg.Content))
	default:
		body = m.theme.MessageBody.Width(bodyWidth).Render(msg.Content)
	}

	return label + "\n" + body
}

// renderStatusLine shows the spinner while waiting, the last error after a
// failure, and key hints otherwise.
func (m Model) renderStatusLine() string {
	switch {
	case m.store.Waiting():
		return m.spinner.View() + " " + m.theme.ThinkingText.Render("Sending...")
	case m.store.LastError() != "":
		return m.theme.ErrorLine.Render(styles.StatusIndicators.Error + " " + m.store.LastError())
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(parts, m.theme.ShortcutDesc.Render("  "))
}
