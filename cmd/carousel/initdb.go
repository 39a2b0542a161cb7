// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
)

func initDBCommand(options *globalOptions) *cobra.Command {
	var seedPath string
	var seed bool

	command := &cobra.Command{
		Use:   "init-db",
		Short: "Create the catalog tables in Postgres",
		Long: `Create the catalog tables in the database named by --dsn (or
catalog.dsn in the config file). Existing tables are kept.

With --seed, the stored catalog is replaced by the built-in dummy
catalog, or by the catalog file given with --seed-from.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, err := options.loadConfig(command)
			if err != nil {
				return err
			}
			if cfg.Catalog.DSN == "" {
				return cli.Validation("no database: set --dsn or catalog.dsn")
			}
			logger := options.logger(cfg).With("command", command.Name())

			ctx, cancel := commandContext(command)
			defer cancel()

			if err := catalog.InitSchema(ctx, cfg.Catalog.DSN); err != nil {
				return cli.Unavailable("%w", err)
			}
			logger.Info("catalog schema ready")

			if !seed && seedPath == "" {
				return nil
			}

			groups := catalog.DummyGroups()
			if seedPath != "" {
				groups, err = catalog.ReadFile(seedPath)
				if err != nil {
					return cli.Validation("%w", err)
				}
			}

			source, err := catalog.NewPostgresSource(ctx, cfg.Catalog.DSN)
			if err != nil {
				return cli.Unavailable("%w", err)
			}
			defer source.Close()
			if err := source.Import(ctx, groups); err != nil {
				return cli.Unavailable("%w", err)
			}
			_, err = fmt.Fprintf(command.OutOrStdout(), "Seeded %d groups (%d items)\n",
				len(groups), len(catalog.Flatten(groups)))
			return err
		},
	}
	command.Flags().BoolVar(&seed, "seed", false, "replace the stored catalog with the built-in one")
	command.Flags().StringVar(&seedPath, "seed-from", "", "replace the stored catalog with this catalog file (implies --seed)")
	return command
}
