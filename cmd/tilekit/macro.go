// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilekit/tilekit/pkg/input"
)

// NewMacroCmd creates the macro subcommand.
func NewMacroCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "macro <text>",
		Short: "Compile an input macro and print its steps",
		Long: `Compile a macro like "ctrl+shift+p; sleep 120; hold alt+tab 250"
and print the step sequence it lowers to. Useful for checking a macro
before wiring it into an action.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := input.Compile(strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, step := range steps {
				switch s := step.(type) {
				case input.KeyDown:
					cmd.Printf("key down   0x%02X extended=%v\n", s.Scan.Code, s.Scan.Extended)
				case input.KeyUp:
					cmd.Printf("key up     0x%02X extended=%v\n", s.Scan.Code, s.Scan.Extended)
				case input.MouseDown:
					cmd.Printf("mouse down %s\n", s.Button)
				case input.MouseUp:
					cmd.Printf("mouse up   %s\n", s.Button)
				case input.Sleep:
					cmd.Printf("sleep      %s\n", s.Duration)
				}
			}
			return nil
		},
	}
}
