// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"errors"
	"fmt"
)

const (
	// GenericFailure is shown when the endpoint supplied no error message.
	GenericFailure = "Chat completion request failed."

	// MissingCredentialReason is shown when no API key is configured.
	MissingCredentialReason = "API key is not configured."

	// EmptyResponsePlaceholder is returned when a success response holds no text.
	EmptyResponsePlaceholder = "(no response)"
)

// ErrMissingCredential indicates the API key is not set.
var ErrMissingCredential = errors.New("completion API key not configured")

// APIError is a non-success HTTP response from the endpoint.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion endpoint returned HTTP %d", e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("completion error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("completion error (HTTP %d): %s", e.Status, e.Message)
}

// TransportError wraps a failure to send the request or read the response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "completion request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PayloadError is a success response whose body could not be decoded.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return "malformed completion response: " + e.Err.Error()
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// Reason returns the user-visible failure reason for err.
//
// A message supplied by the endpoint wins. A missing credential has its own
// fixed text. Everything else collapses to GenericFailure; the detail is
// available from err itself for logging.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMissingCredential) {
		return MissingCredentialReason
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailure
}
