// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the logrus logger shared by gptchat components.
//
// Interactive front ends own the terminal, so unless a log file is
// configured their log output is discarded instead of being written over
// the screen. Non-interactive commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.WarnLevel

// Options controls logger construction.
type Options struct {
	// Level is a logrus level name ("debug", "info", "warn", ...).
	Level string

	// File, when set, receives all log output (appended, 0600).
	File string

	// Quiet discards output when no File is set.
	Quiet bool

	// JSON selects the JSON formatter instead of the text formatter.
	JSON bool
}

// New creates a logger from opts. The returned close function releases the
// log file, if any, and is always safe to call.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	noop := func() error { return nil }

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, noop, err
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableColors:    opts.File != "",
			DisableQuote:     false,
			QuoteEmptyFields: true,
		})
	}

	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(f)
		return logger, f.Close, nil
	case opts.Quiet:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
	}

	return logger, noop, nil
}

// ParseLevel parses a level name. An empty name yields DefaultLevel.
func ParseLevel(name string) (logrus.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything. Handy for tests and for
// components constructed without a logger.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
