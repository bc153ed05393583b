// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tilekit/tilekit/internal/mockhost"
)

// NewMockhostCmd creates the mockhost subcommand.
func NewMockhostCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mockhost",
		Short: "Run a mock controller host",
		Long: `Run a local controller stand-in for plugin development. Launch your
plugin with -port set to this host's port; frames the plugin sends are
printed, and JSON lines typed on stdin are injected as events.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = cfg.Mockhost.Addr
			}

			host, err := mockhost.Listen(addr, slog.Default())
			if err != nil {
				return err
			}
			defer host.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("mock host on %s; launch plugins with -port %d\n", host.Addr(), host.Port())

			go injectStdin(ctx, host)

			for {
				select {
				case reg := <-host.Registered():
					cmd.Printf("<- registered: event=%s uuid=%s\n", reg.Event, reg.UUID)
				case frame := <-host.Frames():
					cmd.Printf("<- %s\n", string(frame))
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// injectStdin forwards JSON lines from stdin to the connected plugin.
func injectStdin(ctx context.Context, host *mockhost.Host) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var frame map[string]any
		if err := json.Unmarshal(line, &frame); err != nil {
			slog.Warn("not valid JSON, ignored", "error", err)
			continue
		}
		if err := host.Send(ctx, frame); err != nil {
			slog.Warn("inject failed", "error", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
