// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/model"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

// fakeCompleter returns a fixed reply or error and counts calls.
type fakeCompleter struct {
	reply   string
	err     error
	calls   atomic.Int32
	history []model.Message
}

func (f *fakeCompleter) Complete(_ context.Context, history []model.Message) (string, error) {
	f.calls.Add(1)
	f.history = history
	return f.reply, f.err
}

func newOpenWidget(t *testing.T, c *fakeCompleter) Model {
	t.Helper()
	opts := Options{Theme: styles.NewTheme(styles.ThemeDark)}
	if c != nil {
		opts.Completer = c
	}
	m := New(opts)
	m.SetSize(60, 20)
	m, _ = m.SetOpen(true)
	return m
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func pressSubmit(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
}

// runCmd executes cmd, flattening batches, and returns the messages produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findResult(t *testing.T, msgs []tea.Msg) ResultMsg {
	t.Helper()
	for _, msg := range msgs {
		if res, ok := msg.(ResultMsg); ok {
			return res
		}
	}
	t.Fatal("no ResultMsg produced")
	return ResultMsg{}
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestWidget_TypingUpdatesDraft(t *testing.T) {
	m := newOpenWidget(t, &fakeCompleter{reply: "ok"})

	m = typeText(m, "hello")

	assert.Equal(t, "hello", m.Store().Draft())
}

func TestWidget_BlankSubmitIgnored(t *testing.T) {
	c := &fakeCompleter{reply: "ok"}
	m := newOpenWidget(t, c)

	m = typeText(m, "   ")
	m, cmd := pressSubmit(m)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Store().Len())
	assert.False(t, m.Store().Waiting())
	assert.Equal(t, int32(0), c.calls.Load())
}

func TestWidget_SubmitSuccess(t *testing.T) {
	c := &fakeCompleter{reply: "Hello!"}
	m := newOpenWidget(t, c)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	require.NotNil(t, cmd)

	// Accepted: user message appended, input cleared, waiting.
	assert.True(t, m.Store().Waiting())
	assert.Equal(t, 1, m.Store().Len())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Sending...")

	m, _ = m.Update(findResult(t, runCmd(cmd)))

	msgs := m.Store().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Hello!", msgs[1].Content)
	assert.False(t, m.Store().Waiting())
	assert.Contains(t, m.View(), "Hello!")
	assert.Equal(t, int32(1), c.calls.Load())
	require.Len(t, c.history, 1)
}

func TestWidget_SubmitWhileWaitingRefused(t *testing.T) {
	c := &fakeCompleter{reply: "ok"}
	m := newOpenWidget(t, c)

	m = typeText(m, "first")
	m, _ = pressSubmit(m)
	require.True(t, m.Store().Waiting())

	m = typeText(m, "second")
	m, cmd := pressSubmit(m)

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Store().Len())
	// Draft is kept so it can be sent once the reply arrives.
	assert.Equal(t, "second", m.input.Value())
}

func TestWidget_SubmitFailureShowsError(t *testing.T) {
	c := &fakeCompleter{err: &completion.APIError{Status: 401, Message: "bad key"}}
	m := newOpenWidget(t, c)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	m, _ = m.Update(findResult(t, runCmd(cmd)))

	msgs := m.Store().Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].IsError)
	assert.Contains(t, msgs[1].Content, "bad key")
	assert.Equal(t, "bad key", m.Store().LastError())
	assert.Contains(t, m.renderStatusLine(), "bad key")
}

func TestWidget_NilCompleterReportsMissingKey(t *testing.T) {
	m := newOpenWidget(t, nil)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	m, _ = m.Update(findResult(t, runCmd(cmd)))

	msgs := m.Store().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.ErrorPrefix+completion.MissingCredentialReason, msgs[1].Content)
	assert.Equal(t, completion.MissingCredentialReason, m.Store().LastError())
}

// =============================================================================
// OPEN / CLOSE TESTS
// =============================================================================

func TestWidget_CloseResets(t *testing.T) {
	c := &fakeCompleter{reply: "Hello!"}
	m := newOpenWidget(t, c)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	m, _ = m.Update(findResult(t, runCmd(cmd)))
	m = typeText(m, "unsent draft")
	require.Equal(t, 2, m.Store().Len())

	m, _ = m.SetOpen(false)

	assert.False(t, m.IsOpen())
	assert.Equal(t, 0, m.Store().Len())
	assert.Empty(t, m.Store().Draft())
	assert.Empty(t, m.Store().LastError())
	assert.False(t, m.Store().Waiting())
	assert.Empty(t, m.input.Value())
}

func TestWidget_CloseWhileWaitingDropsLateResult(t *testing.T) {
	c := &fakeCompleter{reply: "late"}
	m := newOpenWidget(t, c)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	require.True(t, m.Store().Waiting())

	m, _ = m.SetOpen(false)
	assert.False(t, m.Store().Waiting())

	m, _ = m.Update(findResult(t, runCmd(cmd)))
	assert.Equal(t, 0, m.Store().Len())

	// Reopening starts from an empty transcript.
	m, _ = m.SetOpen(true)
	assert.Equal(t, 0, m.Store().Len())
	assert.Contains(t, m.View(), "press Ctrl+S to send it")
}

func TestWidget_ClosedIgnoresKeys(t *testing.T) {
	m := New(Options{Theme: styles.NewTheme(styles.ThemeDark), Completer: &fakeCompleter{}})

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)

	assert.Nil(t, cmd)
	assert.Empty(t, m.Store().Draft())
	assert.Equal(t, 0, m.Store().Len())
}

func TestWidget_ReopenWithoutCloseKeepsState(t *testing.T) {
	m := newOpenWidget(t, &fakeCompleter{reply: "ok"})
	m = typeText(m, "draft")

	m, _ = m.SetOpen(true)

	assert.Equal(t, "draft", m.Store().Draft())
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestWidget_EmptyStateHint(t *testing.T) {
	m := newOpenWidget(t, &fakeCompleter{})

	// The hint wraps to the widget width; compare it with whitespace collapsed.
	view := strings.Join(strings.Fields(m.View()), " ")
	assert.Contains(t, view, "press Ctrl+S to send it")
	assert.Contains(t, view, "will appear here")
}

func TestWidget_StatusLineShowsHints(t *testing.T) {
	m := newOpenWidget(t, &fakeCompleter{})
	line := m.renderStatusLine()
	assert.Contains(t, line, "C-s")
	assert.Contains(t, line, "send")
}

func TestWidget_MarkdownReplies(t *testing.T) {
	m := New(Options{
		Theme:          styles.NewTheme(styles.ThemeDark),
		Completer:      &fakeCompleter{reply: "some **bold** text"},
		RenderMarkdown: true,
	})
	m.SetSize(60, 20)
	m, _ = m.SetOpen(true)

	m = typeText(m, "hi")
	m, cmd := pressSubmit(m)
	m, _ = m.Update(findResult(t, runCmd(cmd)))

	view := m.renderTranscript()
	assert.Contains(t, view, "bold")
	assert.NotContains(t, view, "**bold**")
}
