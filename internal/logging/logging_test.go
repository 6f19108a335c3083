// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"debug", logrus.DebugLevel, false},
		{" INFO ", logrus.InfoLevel, false},
		{"warning", logrus.WarnLevel, false},
		{"chatty", DefaultLevel, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gptchat.log")

	logger, closeFn, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.WithField("component", "test").Info("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
	require.Contains(t, string(data), "component=test")
}

func TestNew_QuietDiscards(t *testing.T) {
	logger, closeFn, err := New(Options{Quiet: true})
	require.NoError(t, err)
	defer closeFn()

	require.Equal(t, io.Discard, logger.Out)
	require.Equal(t, DefaultLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closeFn, err := New(Options{Level: "loud"})
	require.Error(t, err)
	require.NoError(t, closeFn())
}
