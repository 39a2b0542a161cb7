// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"os"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/config"
)

// OpenSource returns the catalog source selected by cfg and a cleanup
// function that releases it. A DSN selects Postgres, a Path selects a
// catalog file, and neither selects the built-in static catalog.
//
// A file that does not exist yet is not an error here: the store
// reports it as an unavailable catalog, and a watcher picks the file
// up once it appears.
func OpenSource(ctx context.Context, cfg config.CatalogConfig) (catalog.Source, func(), error) {
	switch {
	case cfg.DSN != "":
		source, err := catalog.NewPostgresSource(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, Unavailable("%w", err).
				WithHint("Check that the database is reachable and the schema exists ('carousel init-db').")
		}
		return source, source.Close, nil

	case cfg.Path != "":
		source, err := catalog.NewFileSource(cfg.Path)
		if err != nil {
			return nil, nil, Validation("%w", err)
		}
		return source, func() {}, nil

	default:
		return catalog.DefaultSource(), func() {}, nil
	}
}

// LoadConfig loads the config file at path, or the file named by
// CAROUSEL_CONFIG when path is empty, and validates it. With neither,
// it returns the defaults.
func LoadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound("%w", err)
		}
		return nil, Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid config: %w", err)
	}
	return cfg, nil
}
