// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command gptchat opens a chat dialog backed by an OpenAI-style
// chat-completion endpoint.
package main

import (
	"os"

	"github.com/jeranaias/gptchat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
