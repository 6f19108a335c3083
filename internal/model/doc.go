// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
//
// # Key Types
//
//   - Message: Single immutable message with id, role, content and timestamp
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
//	msg := model.NewUserMessage("Hello!")
//	fmt.Println(msg.Role.DisplayName(), msg.Content)
//
// Messages are passed and stored by value. Once created they are never
// modified; a conversation is cleared by dropping its messages in bulk.
package model
