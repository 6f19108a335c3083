// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown_RendersText(t *testing.T) {
	md := NewMarkdown("notty", 40)

	out := md.Render("# Title\n\nSome **bold** text.")

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.NotEqual(t, '\n', rune(out[0]))
}

func TestMarkdown_SetWidth(t *testing.T) {
	md := NewMarkdown("dark", 40)
	assert.Equal(t, 40, md.Width())

	md.SetWidth(60)
	assert.Equal(t, 60, md.Width())

	md.SetWidth(2)
	assert.Equal(t, 10, md.Width())
}

func TestMarkdown_NilRendererFallsBack(t *testing.T) {
	md := &Markdown{}
	assert.Equal(t, "plain", md.Render("plain"))
}
