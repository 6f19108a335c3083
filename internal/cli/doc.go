// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli provides the gptchat command tree.

	gptchat                    Full-screen page with the chat dialog (same as "tui")
	gptchat tui                Full-screen page with the chat dialog
	gptchat ask PROMPT...      One exchange; prints the reply, exits 1 on failure
	gptchat chat               Line-oriented chat (/clear resets, /quit exits)
	gptchat config show        Print the effective configuration (key redacted)
	gptchat config path        Print the config file location
	gptchat config init        Write a default config file
	gptchat version            Print version information

Global flags:

	--config FILE      Read configuration from FILE (.toml, .json, .yaml)
	--model NAME       Override the completion model
	--log-level LEVEL  Override the log level (debug, info, warn, error)

Every command builds its dependencies through setup: configuration, the
logrus logger and the completion client. A missing API key is reported once
as a warning; it is not fatal, because each submission then fails with a
visible message instead.
*/
package cli
