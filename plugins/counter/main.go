// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package main implements the counter example plugin: a tile that counts
// key presses, a manual log adapter, and a directory watcher that starts
// with a monitored application.
package main

import (
	"context"
	"os"

	"github.com/tilekit/tilekit/internal/logging"
	"github.com/tilekit/tilekit/pkg/plugin"
	"github.com/tilekit/tilekit/pkg/runtime"
)

var version = "dev"

func main() {
	logging.SetDefault("counter", version, "json", nil)

	p, err := buildPlugin()
	if err != nil {
		os.Exit(1)
	}

	if err := runtime.RunPlugin(context.Background(), p); err != nil {
		os.Exit(1)
	}
}

func buildPlugin() (*plugin.Plugin, error) {
	return plugin.NewBuilder().
		AddAction(counterFactory()).
		AddAdapter(newLogAdapter()).
		AddAdapter(newWatchAdapter(os.TempDir())).
		Build()
}
