// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/config"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Long: `Inspect or create the configuration file.

Settings are read from ~/.gptchat/config.toml (or --config FILE). These
environment variables override the file:
  OPENAI_API_KEY      API key
  OPENAI_MODEL        completion model
  OPENAI_BASE_URL     endpoint base URL
  GPTCHAT_LOG_LEVEL   log level
  GPTCHAT_LOG_FILE    log file`,
	}
	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigPathCmd(opts),
		newConfigInitCmd(opts),
	)
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			redacted := cfg.Redacted()
			switch format {
			case "toml", "":
				if path == "" {
					path = "(defaults)"
				}
				fmt.Fprintf(out, "# source: %s\n", path)
				key := completion.New(completion.Options{APIKey: cfg.Completion.APIKey})
				fmt.Fprintf(out, "# api key: %s\n", key.APIKeyMasked())
				fmt.Fprint(out, redacted.String())
			case "json":
				data, err := json.MarshalIndent(redacted, "", "  ")
				if err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(redacted)
				if err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unknown format %q (use toml, json or yaml)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, json, yaml")
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.targetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.targetConfigPath()
			if err != nil {
				return err
			}
			if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" && ext != "" {
				return fmt.Errorf("config init writes TOML; %s is not a .toml path", path)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if opts.model != "" {
				cfg.Completion.Model = opts.model
			}
			if err := config.SaveTOML(cfg, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// targetConfigPath is --config when given, otherwise the default TOML path.
func (o *rootOptions) targetConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPathTOML()
}
