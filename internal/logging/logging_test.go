// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Options{}.Level())
	assert.Equal(t, slog.LevelDebug, Options{Verbose: true}.Level())
	assert.Equal(t, slog.LevelWarn, Options{Quiet: true}.Level())
	assert.Equal(t, slog.LevelWarn, Options{Quiet: true, Verbose: true}.Level())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{NoColor: true})

	logger.Debug("hidden")
	logger.Info("generated", "paths", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "paths=3")
	assert.NotContains(t, out, "\x1b[")
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Verbose: true, NoColor: true}).Debug("scanning", "file", "Pet.kt")

	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "file=Pet.kt")
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Quiet: true, NoColor: true})

	logger.Info("skipped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "kept")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{NoColor: true})

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
