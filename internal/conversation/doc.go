// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the state of a single chat exchange.
//
// A Store owns the transcript, the draft being typed, the waiting flag and
// the last error. It never performs I/O itself: Submit hands back a Request
// carrying the history to send, and the caller feeds the outcome to Resolve.
// This keeps the one awaited call outside the store so a UI event loop can
// run it asynchronously while the store is only touched from that loop.
//
// # Usage
//
//	store := conversation.NewStore(logger)
//	if req, ok := store.Submit(text); ok {
//	    reply, err := client.Complete(ctx, req.History)
//	    store.Resolve(conversation.Result{Content: reply, Err: err})
//	}
//
// Exchange performs the same three steps synchronously.
package conversation
