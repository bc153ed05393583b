// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilekit/tilekit/internal/config"
	"github.com/tilekit/tilekit/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

// cfg is populated before any subcommand runs.
var cfg config.Config

// NewRootCmd creates the root command for the tilekit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tilekit",
		Short: "TileKit - developer tools for tile controller plugins",
		Long: `TileKit provides developer tooling for plugins built on the TileKit
runtime: manifest schema generation and validation, a mock controller
host for local development, and a macro compiler for input sequences.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logging.SetDefault("tilekit", cmd.Root().Version, cfg.Log.Format, parseLevel(cfg.Log.Level))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("log.level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log.format", "", "log format (text, json)")

	cmd.AddCommand(NewGenSchemaCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewMockhostCmd())
	cmd.AddCommand(NewMacroCmd())

	return cmd
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
