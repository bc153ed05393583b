// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tilekit/tilekit/pkg/manifest"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest.json>",
		Short: "Validate a plugin manifest",
		Long: `Validate a manifest.json file against the schema and the semantic
rules the controller enforces (identifiers, versions, action states).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return oops.With("path", args[0]).Wrapf(err, "reading manifest")
			}

			if err := manifest.ValidateSchema(data); err != nil {
				cmd.PrintErrln(manifest.FormatSchemaError(err))
				return oops.With("path", args[0]).Errorf("schema validation failed")
			}
			m, err := manifest.Parse(data)
			if err != nil {
				return err
			}

			cmd.Printf("%s: ok (%s %s, %d actions)\n", args[0], m.UUID, m.Version, len(m.Actions))
			return nil
		},
	}
}
