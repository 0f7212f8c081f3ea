// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package logging builds the slog logger shared by the commands.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// Options control the logger's verbosity and colouring.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool

	// Timestamps prefixes every record with the wall clock time.
	Timestamps bool
}

// Level maps the verbosity flags to a slog level. Quiet wins over Verbose.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelWarn
	case o.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	to := &tint.Options{
		Level:      opts.Level(),
		NoColor:    opts.NoColor,
		TimeFormat: "15:04:05.000",
	}
	if !opts.Timestamps {
		to.ReplaceAttr = dropTime
	}
	return slog.New(tint.NewHandler(w, to))
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
