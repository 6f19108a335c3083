// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gptchat/internal/conversation"
	"github.com/jeranaias/gptchat/internal/ui/components"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

// MaxStdinPrompt caps a prompt read from stdin (1MB).
const MaxStdinPrompt = 1 << 20

type askOptions struct {
	raw bool
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	askOpts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Send one message and print the reply",
		Long: `Send one message and print the reply.

Without arguments the prompt is read from stdin. On a terminal the reply is
rendered as markdown; piped output is left as plain text. A failed request
prints the reason to stderr and exits with status 1.

Examples:
  gptchat ask "What is the capital of France?"
  git diff | gptchat ask
  gptchat ask --model gpt-4o-mini --raw "Write a haiku" > haiku.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, askOpts, args)
		},
	}
	cmd.Flags().BoolVar(&askOpts.raw, "raw", false, "print the reply without markdown rendering")
	return cmd
}

func runAsk(cmd *cobra.Command, opts *rootOptions, askOpts *askOptions, args []string) error {
	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	env, err := opts.setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	store := conversation.NewStore(env.log)
	if !store.Exchange(cmd.Context(), env.client, prompt) {
		return errors.New("no prompt provided. Usage: gptchat ask \"your question\"")
	}
	if reason := store.LastError(); reason != "" {
		return errors.New(reason)
	}

	msgs := store.Messages()
	reply := msgs[len(msgs)-1].Content

	out := cmd.OutOrStdout()
	if !askOpts.raw && env.cfg.UI.RenderMarkdown && isTerminal(out) {
		theme := styles.NewTheme(strings.ToLower(env.cfg.UI.Theme))
		reply = components.NewMarkdown(theme.GlamourStyle(), renderWidth(out)).Render(reply)
	}
	fmt.Fprintln(out, reply)
	return nil
}

// readPrompt joins args, or reads stdin when there are none and stdin is
// not a terminal.
func readPrompt(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isTerminal(in) {
		return "", errors.New("no prompt provided. Usage: gptchat ask \"your question\"")
	}

	data, err := io.ReadAll(io.LimitReader(in, MaxStdinPrompt+1))
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	if len(data) > MaxStdinPrompt {
		return "", fmt.Errorf("prompt on stdin exceeds %d bytes", MaxStdinPrompt)
	}
	return string(data), nil
}
