// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gptchat/internal/config"
	"github.com/jeranaias/gptchat/internal/model"
	"github.com/jeranaias/gptchat/internal/ui/chat"
	"github.com/jeranaias/gptchat/internal/ui/components"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, history []model.Message) (string, error) {
	return "echo: " + history[len(history)-1].Content, nil
}

func newTestApp(t *testing.T, cfg *config.Config) *Model {
	t.Helper()
	m := New(Options{
		Theme:     styles.NewTheme(styles.ThemeDark),
		Config:    cfg,
		Completer: echoCompleter{},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect executes cmd, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// exchange opens the dialog, sends text and delivers the completion result.
func exchange(t *testing.T, m *Model, text string) {
	t.Helper()
	press(m, runes(text))
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range collect(cmd) {
		if res, ok := msg.(chat.ResultMsg); ok {
			m.Update(res)
			return
		}
	}
	t.Fatal("no completion result")
}

// =============================================================================
// OPEN / CLOSE TESTS
// =============================================================================

func TestApp_StartsClosed(t *testing.T) {
	m := newTestApp(t, nil)

	assert.False(t, m.DialogOpen())
	assert.Contains(t, m.View(), openButtonLabel)
}

func TestApp_OpenOnStart(t *testing.T) {
	cfg := config.Default()
	cfg.Dialog.OpenOnStart = true
	m := newTestApp(t, cfg)

	m.Init()

	assert.True(t, m.DialogOpen())
	assert.True(t, m.Chat().IsOpen())
}

func TestApp_OpenKey(t *testing.T) {
	m := newTestApp(t, nil)

	press(m, runes("o"))

	assert.True(t, m.DialogOpen())
	assert.True(t, m.Chat().IsOpen())
	assert.Contains(t, m.View(), "Chat")
}

func TestApp_OpenButtonClick(t *testing.T) {
	m := newTestApp(t, nil)

	m.Update(tea.MouseMsg{X: openButtonCol + 1, Y: openButtonRow, Type: tea.MouseLeft})

	assert.True(t, m.DialogOpen())
}

func TestApp_ClickElsewhereOnPageIgnored(t *testing.T) {
	m := newTestApp(t, nil)

	m.Update(tea.MouseMsg{X: 60, Y: 20, Type: tea.MouseLeft})

	assert.False(t, m.DialogOpen())
}

func TestApp_EscapeClosesAndResets(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, runes("o"))
	exchange(t, m, "hi")
	require.Equal(t, 2, m.Chat().Store().Len())

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.DialogOpen())
	assert.False(t, m.Chat().IsOpen())
	assert.Equal(t, 0, m.Chat().Store().Len())

	var closed bool
	for _, msg := range collect(cmd) {
		if c, ok := msg.(components.DialogClosedMsg); ok {
			closed = true
			assert.Equal(t, components.DialogCloseEscape, c.Reason)
		}
	}
	assert.True(t, closed)
}

func TestApp_OutsideClickClosesAndResets(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, runes("o"))
	exchange(t, m, "hi")

	m.Update(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseLeft})

	assert.False(t, m.DialogOpen())
	assert.Equal(t, 0, m.Chat().Store().Len())
}

func TestApp_ReopenStartsEmpty(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, runes("o"))
	exchange(t, m, "hi")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	press(m, runes("o"))

	assert.True(t, m.DialogOpen())
	assert.Equal(t, 0, m.Chat().Store().Len())
}

func TestApp_KeysReachWidgetWhileOpen(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, runes("o"))

	// "q" is text inside the dialog, not quit.
	cmd := press(m, runes("q"))

	assert.True(t, m.DialogOpen())
	assert.Equal(t, "q", m.Chat().Store().Draft())
	for _, msg := range collect(cmd) {
		_, quit := msg.(tea.QuitMsg)
		assert.False(t, quit)
	}
}

func TestApp_CloseDialog(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, runes("o"))
	exchange(t, m, "hi")

	cmd := m.CloseDialog()

	require.NotNil(t, cmd)
	assert.Equal(t, components.DialogClosedMsg{Reason: components.DialogCloseProgram}, cmd())
	assert.Equal(t, 0, m.Chat().Store().Len())
	assert.Nil(t, m.CloseDialog())
}

// =============================================================================
// QUIT TESTS
// =============================================================================

func TestApp_QuitKeys(t *testing.T) {
	m := newTestApp(t, nil)
	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	press(m, runes("o"))
	cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestApp_MissingKeyWarning(t *testing.T) {
	m := newTestApp(t, config.Default())
	assert.Contains(t, m.View(), config.EnvAPIKey)

	cfg := config.Default()
	cfg.Completion.APIKey = "sk-test"
	m = newTestApp(t, cfg)
	assert.NotContains(t, m.View(), config.EnvAPIKey)
}

func TestApp_PageShowsModel(t *testing.T) {
	cfg := config.Default()
	cfg.Completion.Model = "gpt-4o-mini"
	m := newTestApp(t, cfg)

	assert.Contains(t, m.View(), "gpt-4o-mini")
}
