// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package errutil logs and asserts on structured errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// Attrs extracts slog attributes from an error. Oops errors contribute
// their code and context; plain errors just their message.
func Attrs(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err}
	}
	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}

// LogError logs an error at error level with its structured context.
func LogError(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, Attrs(err)...)
}

// LogWarn logs an error at warn level with its structured context. Used
// for recoverable conditions like dropped frames and retried writes.
func LogWarn(logger *slog.Logger, msg string, err error) {
	logger.Warn(msg, Attrs(err)...)
}
