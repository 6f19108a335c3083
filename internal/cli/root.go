// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gptchat/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	model      string
	logLevel   string
}

// NewRootCmd creates the gptchat command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gptchat",
		Short: "Chat with an OpenAI-compatible model from the terminal",
		Long: `gptchat opens a chat dialog backed by a chat-completion API.

The API key is read from OPENAI_API_KEY. Without subcommand the full-screen
interface starts; "ask" and "chat" work in plain terminals and pipes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.gptchat/config.toml)")
	flags.StringVarP(&opts.model, "model", "m", "", "completion model (overrides config and OPENAI_MODEL)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newTUICmd(opts),
		newAskCmd(opts),
		newChatCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	return 0
}
