// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/model"
)

// Completer produces an assistant reply for a message history.
type Completer interface {
	Complete(ctx context.Context, history []model.Message) (string, error)
}

// Request is an accepted submission waiting for its completion.
type Request struct {
	// ID is the id of the user message that started the request.
	ID string

	// History is a snapshot of the transcript including the new user message.
	History []model.Message
}

// Result is the outcome of a completion: either Content or Err is meaningful.
type Result struct {
	RequestID string
	Content   string
	Err       error
}

// OK reports whether the completion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Store is the conversation state. The zero value is not usable; call
// NewStore. A Store is not safe for concurrent use.
type Store struct {
	messages  []model.Message
	draft     string
	waiting   bool
	pendingID string
	lastError string

	log logrus.FieldLogger
}

// NewStore creates an empty store. A nil logger discards log output.
func NewStore(logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{log: logger.WithField("component", "conversation")}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns a copy of the transcript in chronological order.
func (s *Store) Messages() []model.Message {
	return model.Clone(s.messages)
}

// Len returns the number of messages in the transcript.
func (s *Store) Len() int {
	return len(s.messages)
}

// Draft returns the text currently being typed.
func (s *Store) Draft() string {
	return s.draft
}

// SetDraft replaces the draft text.
func (s *Store) SetDraft(text string) {
	s.draft = text
}

// Waiting reports whether a completion request is outstanding.
func (s *Store) Waiting() bool {
	return s.waiting
}

// LastError returns the reason of the most recent failure, or "".
func (s *Store) LastError() string {
	return s.lastError
}

// CanSubmit reports whether Submit(text) would be accepted.
func (s *Store) CanSubmit(text string) bool {
	return !s.waiting && strings.TrimSpace(text) != ""
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Submit starts an exchange with text. It returns false and leaves the store
// untouched when text is blank or a request is already outstanding.
// Otherwise the trimmed text is appended as a user message, the draft and
// last error are cleared, the store starts waiting, and the returned Request
// carries the full history to send.
func (s *Store) Submit(text string) (Request, bool) {
	if !s.CanSubmit(text) {
		return Request{}, false
	}

	msg := model.NewUserMessage(strings.TrimSpace(text))
	s.messages = append(s.messages, msg)
	s.draft = ""
	s.lastError = ""
	s.waiting = true
	s.pendingID = msg.ID

	s.log.WithFields(logrus.Fields{
		"request":  msg.ID,
		"messages": len(s.messages),
	}).Debug("submitted message")

	return Request{ID: msg.ID, History: s.Messages()}, true
}

// Resolve applies the outcome of the outstanding request. A success appends
// the reply as an assistant message; a failure appends an error-annotated
// assistant message and records the reason. Either way the store stops
// waiting.
//
// Results that do not belong to the outstanding request, including any
// arriving after Reset, are ignored.
func (s *Store) Resolve(res Result) {
	if !s.waiting || (res.RequestID != "" && res.RequestID != s.pendingID) {
		s.log.WithField("request", res.RequestID).Debug("dropping stale completion result")
		return
	}

	if res.OK() {
		s.messages = append(s.messages, model.NewAssistantMessage(res.Content))
	} else {
		reason := completion.Reason(res.Err)
		s.messages = append(s.messages, model.NewErrorMessage(reason))
		s.lastError = reason
		s.log.WithError(res.Err).WithField("request", s.pendingID).Info("completion failed")
	}

	s.waiting = false
	s.pendingID = ""

	s.log.WithFields(logrus.Fields{
		"messages": len(s.messages),
		"ok":       res.OK(),
	}).Debug("resolved completion")
}

// Reset returns the store to its empty state unconditionally.
func (s *Store) Reset() {
	s.messages = nil
	s.draft = ""
	s.waiting = false
	s.pendingID = ""
	s.lastError = ""
	s.log.Debug("conversation reset")
}

// =============================================================================
// SYNCHRONOUS EXCHANGE
// =============================================================================

// Run performs the completion for req and returns its Result.
func Run(ctx context.Context, c Completer, req Request) Result {
	content, err := c.Complete(ctx, req.History)
	return Result{RequestID: req.ID, Content: content, Err: err}
}

// Exchange submits text, waits for the completion and resolves it. It
// returns false if the submission was refused.
func (s *Store) Exchange(ctx context.Context, c Completer, text string) bool {
	req, ok := s.Submit(text)
	if !ok {
		return false
	}
	s.Resolve(Run(ctx, c, req))
	return true
}
