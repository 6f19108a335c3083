// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/conversation"
	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/ui/components"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

const (
	inputHeight = 3

	// Layout below the transcript: input border (1), input, status line (1).
	reservedHeight = inputHeight + 2
)

// Options configures a chat widget.
type Options struct {
	Theme *styles.Theme

	// Completer answers submissions. Nil behaves like a client without a
	// credential: every submission fails with the missing key reason.
	Completer conversation.Completer

	Logger logrus.FieldLogger

	// RenderMarkdown renders assistant replies with glamour.
	RenderMarkdown bool
}

// Model is the chat widget.
type Model struct {
	theme     *styles.Theme
	keys      KeyMap
	store     *conversation.Store
	completer conversation.Completer
	log       logrus.FieldLogger

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	markdown *components.Markdown

	open   bool
	width  int
	height int
}

// New creates a closed chat widget.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ThemeAuto)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	completer := opts.Completer
	if completer == nil {
		completer = completion.New(completion.Options{Logger: logger})
	}

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)

	vp := viewport.New(40, 10)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	m := Model{
		theme:     theme,
		keys:      DefaultKeyMap(),
		store:     conversation.NewStore(logger),
		completer: completer,
		log:       logger.WithField("component", "chat"),
		viewport:  vp,
		input:     ta,
		spinner:   sp,
	}
	if opts.RenderMarkdown {
		m.markdown = components.NewMarkdown(theme.GlamourStyle(), vp.Width)
	}
	m.SetSize(60, 20)
	return m
}

// =============================================================================
// HOST INTERFACE
// =============================================================================

// SetOpen tells the widget whether its dialog is visible. Closing resets the
// conversation: messages, draft, waiting flag and error are all cleared.
func (m Model) SetOpen(open bool) (Model, tea.Cmd) {
	wasOpen := m.open
	m.open = open

	switch {
	case wasOpen && !open:
		m.store.Reset()
		m.input.Reset()
		m.input.Blur()
		m.refreshTranscript()
		m.log.Debug("dialog closed, conversation reset")
		return m, nil

	case !wasOpen && open:
		cmd := m.input.Focus()
		m.refreshTranscript()
		return m, tea.Batch(cmd, textarea.Blink)
	}
	return m, nil
}

// IsOpen reports the open flag last passed to SetOpen.
func (m Model) IsOpen() bool {
	return m.open
}

// SetSize sets the area the widget renders into.
func (m *Model) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < reservedHeight+1 {
		height = reservedHeight + 1
	}
	m.width = width
	m.height = height

	m.viewport.Width = width
	m.viewport.Height = height - reservedHeight
	m.input.SetWidth(width)
	if m.markdown != nil {
		// MessageBody indents by two columns.
		m.markdown.SetWidth(width - 2)
	}
	m.refreshTranscript()
}

// Store exposes the conversation state.
func (m Model) Store() *conversation.Store {
	return m.store
}

// KeyMap returns the widget key bindings.
func (m Model) KeyMap() KeyMap {
	return m.keys
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the widget.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages. While closed only completion results are
// processed so that late results reach the store and are dropped there.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.store.Waiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.open {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			m.viewport.LineUp(3)
		case tea.MouseWheelDown:
			m.viewport.LineDown(3)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the store and, if accepted, starts the
// completion.
func (m Model) submit() (Model, tea.Cmd) {
	req, ok := m.store.Submit(m.input.Value())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.refreshTranscript()
	return m, tea.Batch(m.completeCmd(req), m.spinner.Tick)
}

// completeCmd runs the completion off the Update loop.
func (m Model) completeCmd(req conversation.Request) tea.Cmd {
	c := m.completer
	return func() tea.Msg {
		return ResultMsg{Result: conversation.Run(context.Background(), c, req)}
	}
}

func (m Model) handleResult(msg ResultMsg) (Model, tea.Cmd) {
	m.store.Resolve(msg.Result)
	m.refreshTranscript()
	return m, nil
}

// refreshTranscript re-renders the transcript and keeps it scrolled to the
// latest message.
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
