// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tilekit/tilekit/pkg/manifest"
)

// NewGenSchemaCmd creates the gen-schema subcommand.
func NewGenSchemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen-schema",
		Short: "Generate the manifest.json JSON Schema",
		Long: `Generate the JSON Schema for manifest.json descriptor files,
for editor integration and CI validation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := manifest.GenerateSchema()
			if err != nil {
				return err
			}
			if output == "" {
				cmd.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return oops.With("path", output).Wrapf(err, "writing schema")
			}
			cmd.Printf("wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write schema to file instead of stdout")
	return cmd
}
