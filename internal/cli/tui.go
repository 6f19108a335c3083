// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/gptchat/internal/ui/app"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen chat interface",
		Long: `Start the full-screen interface: a page with an "Open chat" button
and the chat dialog.

Inside the dialog:
  Ctrl+S / Alt+Enter   send the message
  Enter                newline
  PgUp / PgDn          scroll the transcript
  Esc / Ctrl+X         close the dialog (clears the conversation)
  Ctrl+C               quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	env, err := opts.setup(true)
	if err != nil {
		return err
	}
	defer env.Close()

	// The page repeats this, but the log is discarded while the TUI owns
	// the screen, so stderr is the only record outside the alt screen.
	env.warnIfUnconfigured(cmd.ErrOrStderr())

	theme := styles.NewTheme(strings.ToLower(env.cfg.UI.Theme))

	m := app.New(app.Options{
		Theme:     theme,
		Config:    env.cfg,
		Completer: env.client,
		Logger:    env.log,
		ModelName: env.client.Model(),
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running gptchat: %w", err)
	}
	return nil
}
