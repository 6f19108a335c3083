// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/gptchat/internal/config"
	"github.com/jeranaias/gptchat/internal/conversation"
	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/ui/chat"
	"github.com/jeranaias/gptchat/internal/ui/components"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

// Options configures the application model.
type Options struct {
	Theme     *styles.Theme
	Config    *config.Config
	Completer conversation.Completer
	Logger    logrus.FieldLogger

	// ModelName is shown on the page.
	ModelName string
}

// Model is the main Bubble Tea model for the application.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	log   logrus.FieldLogger

	dialog components.Dialog
	chat   chat.Model

	modelName   string
	configured  bool
	openOnStart bool

	// Dimensions
	width  int
	height int
}

// New creates the application model. A nil Config selects the defaults.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := &Model{
		theme:       theme,
		keys:        DefaultKeyMap(),
		log:         logger.WithField("component", "app"),
		dialog:      components.NewDialog(theme, cfg.Dialog.Title, cfg.Dialog.ShowCloseButton),
		modelName:   opts.ModelName,
		configured:  cfg.HasCredential(),
		openOnStart: cfg.Dialog.OpenOnStart,
		width:       80,
		height:      24,
	}
	if m.modelName == "" {
		m.modelName = cfg.Completion.Model
	}
	m.chat = chat.New(chat.Options{
		Theme:          theme,
		Completer:      opts.Completer,
		Logger:         logger,
		RenderMarkdown: cfg.UI.RenderMarkdown,
	})
	m.resize(m.width, m.height)
	return m
}

// =============================================================================
// ACCESSORS
// =============================================================================

// DialogOpen reports whether the chat dialog is visible.
func (m *Model) DialogOpen() bool {
	return m.dialog.IsOpen()
}

// Chat returns the chat widget.
func (m *Model) Chat() chat.Model {
	return m.chat
}

// Dialog returns the dialog host.
func (m *Model) Dialog() components.Dialog {
	return m.dialog
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	if m.openOnStart {
		return m.openDialog()
	}
	return m.chat.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case components.DialogClosedMsg:
		m.log.WithField("reason", msg.Reason).Debug("dialog closed")
		return m, nil
	}

	// Completion results, spinner ticks, cursor blink.
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.dialog.IsOpen() {
		return m.updateDialog(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m, m.openDialog()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialog.IsOpen() {
		return m.updateDialog(msg)
	}
	if msg.Type == tea.MouseLeft && m.onOpenButton(msg.X, msg.Y) {
		return m, m.openDialog()
	}
	return m, nil
}

// updateDialog gives the dialog first refusal on input. If the dialog
// closes the widget is told immediately; otherwise the input goes to the
// widget.
func (m *Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if !m.dialog.IsOpen() {
		var chatCmd tea.Cmd
		m.chat, chatCmd = m.chat.SetOpen(false)
		return m, tea.Batch(cmd, chatCmd)
	}

	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) openDialog() tea.Cmd {
	m.dialog.Open()
	var cmd tea.Cmd
	m.chat, cmd = m.chat.SetOpen(true)
	m.log.Debug("dialog opened")
	return cmd
}

// CloseDialog closes the dialog from outside any input event.
func (m *Model) CloseDialog() tea.Cmd {
	if !m.dialog.IsOpen() {
		return nil
	}
	m.dialog.Close()
	m.chat, _ = m.chat.SetOpen(false)
	return func() tea.Msg {
		return components.DialogClosedMsg{Reason: components.DialogCloseProgram}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.dialog.SetSize(width, height)
	m.chat.SetSize(m.dialog.ContentSize())
}
