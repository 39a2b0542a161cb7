// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
)

func exportCommand(options *globalOptions) *cobra.Command {
	var outputPath string

	command := &cobra.Command{
		Use:   "export --out PATH",
		Short: "Write the current catalog to a file",
		Long: `Write the current catalog to PATH. The format follows the extension:
.json, .jsonc, .jsonl, .yaml, .yml, or .cbor, optionally followed by .zst
or .lz4 for compression. The file is replaced atomically.

Exporting the built-in catalog gives a template to edit and load with
--catalog.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if outputPath == "" {
				return cli.Validation("--out is required")
			}
			if _, _, err := catalog.DetectFormat(outputPath); err != nil {
				return cli.Validation("%w", err)
			}

			ctx, cancel := commandContext(command)
			defer cancel()

			session, err := options.openSession(ctx, command)
			if err != nil {
				return err
			}
			defer session.close()

			snapshot := session.store.Snapshot()
			if err := catalog.WriteFile(outputPath, snapshot.Groups); err != nil {
				return cli.Internal("%w", err)
			}
			session.logger.Info("catalog exported",
				"path", outputPath,
				"groups", len(snapshot.Groups),
				"items", len(snapshot.Items),
				"revision", snapshot.Revision.String(),
			)
			if options.jsonOutput {
				return cli.WriteJSON(command.OutOrStdout(), map[string]any{
					"path":     outputPath,
					"groups":   len(snapshot.Groups),
					"items":    len(snapshot.Items),
					"revision": snapshot.Revision.String(),
				})
			}
			_, err = fmt.Fprintf(command.OutOrStdout(), "Wrote %d groups (%d items) to %s\n",
				len(snapshot.Groups), len(snapshot.Items), outputPath)
			return err
		},
	}
	command.Flags().StringVarP(&outputPath, "out", "o", "", "file to write")
	return command
}
