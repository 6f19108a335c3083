// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/gptchat/internal/completion"
	"github.com/jeranaias/gptchat/internal/config"
	"github.com/jeranaias/gptchat/internal/logging"
	"github.com/jeranaias/gptchat/internal/ui/styles"
)

// environment is what every command runs with.
type environment struct {
	cfg     *config.Config
	cfgPath string
	log     *logrus.Logger
	client  *completion.Client

	closeLog func() error
}

// Close releases the log file, if any.
func (e *environment) Close() {
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

// warnIfUnconfigured prints the missing-key warning to w and reports
// whether it did.
func (e *environment) warnIfUnconfigured(w io.Writer) bool {
	if e.client.IsConfigured() {
		return false
	}
	fmt.Fprintln(w, styles.RenderWarning(config.EnvAPIKey+" is not set; every message will fail."))
	return true
}

// loadConfig loads the config named by --config, or the default one, and
// applies the global flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if o.configPath != "" {
		path = o.configPath
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if o.model != "" {
		cfg.Completion.Model = o.model
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid options: %w", err)
	}
	return cfg, path, nil
}

// setup builds the environment. interactive marks front ends that own the
// terminal; their logs are dropped unless a log file is configured.
func (o *rootOptions) setup(interactive bool) (*environment, error) {
	cfg, path, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
		Quiet: interactive,
		JSON:  cfg.Logging.JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	client := completion.New(completion.Options{
		APIKey:  cfg.Completion.APIKey,
		Model:   cfg.Completion.Model,
		BaseURL: cfg.Completion.BaseURL,
		Logger:  logger,
	})

	fields := logrus.Fields{
		"model":    client.Model(),
		"base_url": client.BaseURL(),
		"config":   path,
	}
	if client.IsConfigured() {
		fields["key"] = client.KeyFingerprint()
		logger.WithFields(fields).Debug("completion client ready")
	} else {
		logger.WithFields(fields).Warnf("%s is not set; every message will fail", config.EnvAPIKey)
	}

	return &environment{
		cfg:      cfg,
		cfgPath:  path,
		log:      logger,
		client:   client,
		closeLog: closeLog,
	}, nil
}
