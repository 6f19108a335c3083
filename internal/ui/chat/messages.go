// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/gptchat/internal/conversation"
)

// ResultMsg carries the outcome of a completion request back into Update.
type ResultMsg struct {
	Result conversation.Result
}
