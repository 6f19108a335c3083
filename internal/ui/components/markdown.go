// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders assistant replies with glamour.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light", "notty") wrapping at width.
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{style: style}
	m.SetWidth(width)
	return m
}

// Width returns the current wrap width.
func (m *Markdown) Width() int {
	return m.width
}

// SetWidth changes the wrap width, rebuilding the renderer when it changes.
func (m *Markdown) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	if width == m.width && m.renderer != nil {
		return
	}
	m.width = width

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render renders text as markdown. If rendering fails the input is returned
// unchanged.
func (m *Markdown) Render(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	// glamour pads the document with blank lines.
	return strings.Trim(out, "\n")
}
