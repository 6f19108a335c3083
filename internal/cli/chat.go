// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/conversation"
	"github.com/jeranaias/gptchat/internal/model"
	"github.com/jeranaias/gptchat/internal/ui/components"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

const chatPrompt = "you> "

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-oriented chat session",
		Long: `Start a line-oriented chat session with input history.

Commands during chat:
  /clear   clear the conversation (like closing the dialog)
  /help    show these commands
  /quit    exit (also Ctrl+D or Ctrl+C)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	env, err := opts.setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	out := cmd.OutOrStdout()
	render := func(s string) string { return s }
	if env.cfg.UI.RenderMarkdown && isTerminal(out) {
		theme := styles.NewTheme(strings.ToLower(env.cfg.UI.Theme))
		md := components.NewMarkdown(theme.GlamourStyle(), renderWidth(out))
		render = md.Render
	}

	fmt.Fprintln(out, infoStyle.Render("Chatting with ")+promptStyle.Render(env.client.Model())+
		infoStyle.Render(". Type /help for commands."))
	env.warnIfUnconfigured(out)

	r := &repl{
		in:        line,
		out:       out,
		store:     conversation.NewStore(env.log),
		completer: env.client,
		render:    render,
	}
	return r.run(cmd.Context())
}

// lineReader is the part of liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl drives a conversation from a line reader.
type repl struct {
	in        lineReader
	out       io.Writer
	store     *conversation.Store
	completer conversation.Completer
	render    func(string) string
}

// run reads lines until /quit, EOF or Ctrl+C.
func (r *repl) run(ctx context.Context) error {
	for {
		input, err := r.in.Prompt(chatPrompt)
		if err != nil {
			fmt.Fprintln(r.out)
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if !r.handleCommand(input) {
				return nil
			}
			continue
		}

		r.exchange(ctx, input)
	}
}

// handleCommand runs a slash command and reports whether to keep going.
func (r *repl) handleCommand(input string) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/quit", "/exit", "/q":
		return false
	case "/clear", "/c":
		r.store.Reset()
		fmt.Fprintln(r.out, infoStyle.Render("Conversation cleared."))
	case "/help", "/h":
		fmt.Fprintln(r.out, labelStyle.Render("/clear")+"clear the conversation")
		fmt.Fprintln(r.out, labelStyle.Render("/help")+"show this help")
		fmt.Fprintln(r.out, labelStyle.Render("/quit")+"exit")
	default:
		fmt.Fprintln(r.out, errorStyle.Render("Unknown command: "+input+" (try /help)"))
	}
	return true
}

// exchange sends input and prints the reply or the failure.
func (r *repl) exchange(ctx context.Context, input string) {
	fmt.Fprintln(r.out, infoStyle.Render("Sending..."))
	if !r.store.Exchange(ctx, r.completer, input) {
		return
	}

	msgs := r.store.Messages()
	reply := msgs[len(msgs)-1]
	fmt.Fprintln(r.out, r.formatReply(reply))
}

func (r *repl) formatReply(msg model.Message) string {
	label := assistantStyle.Render(msg.Role.DisplayName() + ":")
	if msg.IsError {
		return label + " " + errorStyle.Render(msg.Content)
	}
	if msg.Content == completion.EmptyResponsePlaceholder {
		return label + " " + infoStyle.Render(msg.Content)
	}
	return label + "\n" + r.render(msg.Content)
}
