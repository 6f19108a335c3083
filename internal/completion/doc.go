// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package completion implements the client for OpenAI-compatible
// chat-completion endpoints.
//
// A Client performs exactly one POST to {base}/chat/completions per call,
// carrying the configured model and the full message history, and returns
// the trimmed text of the first choice. There are no retries, no request
// timeout and no streaming.
//
// # Errors
//
//   - ErrMissingCredential: no API key configured, no request was made
//   - *TransportError: the request could not be sent or read
//   - *APIError: the endpoint answered with a non-success status
//   - *PayloadError: a success response could not be decoded
//
// Reason converts any of these into the text shown to the user.
//
// # Usage
//
//	client := completion.New(completion.Options{APIKey: key, Model: "gpt-4o-mini"})
//	reply, err := client.Complete(ctx, history)
//	if err != nil {
//	    fmt.Println(completion.Reason(err))
//	}
package completion
