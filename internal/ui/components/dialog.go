// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gptchat/internal/ui/styles"
	"github.com/jeranaias/gptchat/internal/util"
)

// =============================================================================
// DIALOG - MODAL HOST
// =============================================================================

const (
	dialogMaxWidth  = 80
	dialogMinWidth  = 30
	dialogMaxHeight = 30
	dialogMinHeight = 10

	// Border (2) on each axis, horizontal padding (2), title bar (2 lines).
	dialogFrameWidth  = 4
	dialogFrameHeight = 4

	closeButtonLabel = "[x]"
)

// DialogCloseReason identifies what closed the dialog.
type DialogCloseReason string

const (
	DialogCloseEscape  DialogCloseReason = "escape"
	DialogCloseButton  DialogCloseReason = "close-button"
	DialogCloseOutside DialogCloseReason = "outside-click"
	DialogCloseProgram DialogCloseReason = "program"
)

// DialogClosedMsg is emitted when the dialog closes.
type DialogClosedMsg struct {
	Reason DialogCloseReason
}

// DialogKeyMap defines the keys the dialog reacts to while open.
type DialogKeyMap struct {
	Escape key.Binding
	Close  key.Binding
}

// DefaultDialogKeyMap returns the default dialog bindings.
func DefaultDialogKeyMap() DialogKeyMap {
	return DialogKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "close"),
		),
	}
}

// Dialog is a centered modal box with a title bar and an optional close
// button. It does not know what it hosts.
type Dialog struct {
	theme *styles.Theme
	keys  DialogKeyMap

	open            bool
	title           string
	showCloseButton bool

	// Screen dimensions
	width  int
	height int
}

// NewDialog creates a closed dialog.
func NewDialog(theme *styles.Theme, title string, showCloseButton bool) Dialog {
	return Dialog{
		theme:           theme,
		keys:            DefaultDialogKeyMap(),
		title:           title,
		showCloseButton: showCloseButton,
		width:           80,
		height:          24,
	}
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Open shows the dialog.
func (d *Dialog) Open() {
	d.open = true
}

// Close hides the dialog.
func (d *Dialog) Close() {
	d.open = false
}

// IsOpen returns whether the dialog is currently visible.
func (d Dialog) IsOpen() bool {
	return d.open
}

// Title returns the dialog title.
func (d Dialog) Title() string {
	return d.title
}

// ShowCloseButton returns whether the close button is rendered.
func (d Dialog) ShowCloseButton() bool {
	return d.showCloseButton
}

// KeyMap returns the dialog key bindings.
func (d Dialog) KeyMap() DialogKeyMap {
	return d.keys
}

// =============================================================================
// GEOMETRY
// =============================================================================

// SetSize sets the screen dimensions the dialog is centered in.
func (d *Dialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// BoxSize returns the outer dimensions of the dialog box.
func (d Dialog) BoxSize() (int, int) {
	w := d.width - 4
	if w > dialogMaxWidth {
		w = dialogMaxWidth
	}
	if w < dialogMinWidth {
		w = dialogMinWidth
	}

	h := d.height - 2
	if h > dialogMaxHeight {
		h = dialogMaxHeight
	}
	if h < dialogMinHeight {
		h = dialogMinHeight
	}
	return w, h
}

// ContentSize returns the space available to hosted content.
func (d Dialog) ContentSize() (int, int) {
	w, h := d.BoxSize()
	return w - dialogFrameWidth, h - dialogFrameHeight
}

// boxOrigin returns the top-left cell of the box, matching lipgloss.Place
// centering.
func (d Dialog) boxOrigin() (int, int) {
	w, h := d.BoxSize()
	return centerOffset(d.width, w), centerOffset(d.height, h)
}

func centerOffset(outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	// lipgloss.Place leaves the odd cell on the right and bottom.
	return gap / 2
}

// Contains reports whether the screen cell (x, y) lies inside the box.
func (d Dialog) Contains(x, y int) bool {
	left, top := d.boxOrigin()
	w, h := d.BoxSize()
	return x >= left && x < left+w && y >= top && y < top+h
}

// onCloseButton reports whether (x, y) hits the close button label in the
// title bar, which sits on the first line inside the top border.
func (d Dialog) onCloseButton(x, y int) bool {
	if !d.showCloseButton {
		return false
	}
	left, top := d.boxOrigin()
	w, _ := d.BoxSize()
	// Right border (1) and right padding (1).
	end := left + w - 2
	start := end - lipgloss.Width(closeButtonLabel)
	return y == top+1 && x >= start && x < end
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the dialog (no-op).
func (d Dialog) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dialog. A closed dialog ignores input.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
		return d, nil

	case tea.KeyMsg:
		if !d.open {
			return d, nil
		}
		switch {
		case key.Matches(msg, d.keys.Escape):
			return d.closeWith(DialogCloseEscape)
		case d.showCloseButton && key.Matches(msg, d.keys.Close):
			return d.closeWith(DialogCloseButton)
		}

	case tea.MouseMsg:
		if !d.open || msg.Type != tea.MouseLeft {
			return d, nil
		}
		if !d.Contains(msg.X, msg.Y) {
			return d.closeWith(DialogCloseOutside)
		}
		if d.onCloseButton(msg.X, msg.Y) {
			return d.closeWith(DialogCloseButton)
		}
	}

	return d, nil
}

func (d Dialog) closeWith(reason DialogCloseReason) (Dialog, tea.Cmd) {
	d.open = false
	return d, func() tea.Msg {
		return DialogClosedMsg{Reason: reason}
	}
}

// View renders the dialog around body, centered on the screen. A closed
// dialog renders nothing.
func (d Dialog) View(body string) string {
	if !d.open {
		return ""
	}

	boxW, boxH := d.BoxSize()
	contentW, contentH := d.ContentSize()

	titleBar := d.renderTitleBar(contentW)
	body = lipgloss.NewStyle().
		Width(contentW).
		Height(contentH).
		MaxHeight(contentH).
		Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left, titleBar, "", body)

	// Width/Height in lipgloss include padding but not the border.
	box := d.theme.DialogBox.
		Width(boxW - 2).
		Height(boxH - 2).
		Render(content)

	return lipgloss.Place(
		d.width, d.height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

func (d Dialog) renderTitleBar(width int) string {
	if !d.showCloseButton {
		return d.theme.DialogTitle.Render(util.TruncateWidth(d.title, width))
	}

	button := d.theme.DialogCloseButton.Render(closeButtonLabel)
	titleWidth := width - lipgloss.Width(closeButtonLabel) - 1
	title := d.theme.DialogTitle.Render(util.TruncateWidth(d.title, titleWidth))

	gap := width - lipgloss.Width(title) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + button
}
