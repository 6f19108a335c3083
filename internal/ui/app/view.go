// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gptchat/internal/config"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

const (
	pageTitle       = "gptchat"
	openButtonLabel = "Open chat"

	// Page rows: header (1), body top padding (1), description (1), blank (1).
	openButtonRow = 4
	// Body left padding.
	openButtonCol = 2
)

// View renders the dialog when open, otherwise the page.
func (m *Model) View() string {
	if m.dialog.IsOpen() {
		return m.dialog.View(m.chat.View())
	}
	return m.renderPage()
}

func (m *Model) renderPage() string {
	header := m.theme.PageHeader.Width(m.width).Render(pageTitle + "  " + m.modelName)

	lines := []string{
		"Talk to " + m.modelName + " in a dialog.",
		"",
		m.theme.Button.Render(openButtonLabel),
	}
	if !m.configured {
		lines = append(lines, "", styles.RenderWarning(config.EnvAPIKey+" is not set; every message will fail."))
	}
	body := m.theme.PageBody.Render(strings.Join(lines, "\n"))

	var hints []string
	for _, b := range []key.Binding{m.keys.Open, m.keys.Quit} {
		h := b.Help()
		hints = append(hints, m.theme.ShortcutKey.Render(h.Key)+" "+h.Desc)
	}
	footer := m.theme.PageFooter.Width(m.width).Render(strings.Join(hints, "  "))

	gap := m.height - lipgloss.Height(header) - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap < 0 {
		gap = 0
	}
	return header + "\n" + body + strings.Repeat("\n", gap+1) + footer
}

// onOpenButton reports whether (x, y) hits the page's open button.
func (m *Model) onOpenButton(x, y int) bool {
	w := lipgloss.Width(m.theme.Button.Render(openButtonLabel))
	return y == openButtonRow && x >= openButtonCol && x < openButtonCol+w
}
