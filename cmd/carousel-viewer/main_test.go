// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/bureau-foundation/carousel/lib/config"
)

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*config.Config)
		args  []string
		check func(*testing.T, *config.Config)
	}{
		{
			name:  "catalog flag wins over configured dsn",
			setup: func(cfg *config.Config) { cfg.Catalog.DSN = "postgres://localhost/carousel" },
			args:  []string{"--catalog", "items.yaml"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Catalog.Path != "items.yaml" || cfg.Catalog.DSN != "" {
					t.Errorf("catalog = %+v", cfg.Catalog)
				}
			},
		},
		{
			name:  "dsn flag wins over configured watched file",
			setup: func(cfg *config.Config) { cfg.Catalog.Path = "items.yaml"; cfg.Catalog.Watch = true },
			args:  []string{"--dsn", "postgres://db/carousel"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Catalog.Path != "" || cfg.Catalog.Watch || cfg.Catalog.DSN != "postgres://db/carousel" {
					t.Errorf("catalog = %+v", cfg.Catalog)
				}
			},
		},
		{
			name:  "watch and query flags",
			setup: func(cfg *config.Config) { cfg.Viewer.InitialQuery = "from file" },
			args:  []string{"--catalog", "items.json", "--watch", "--query", "title 2"},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Catalog.Watch || cfg.Viewer.InitialQuery != "title 2" {
					t.Errorf("config = %+v", cfg)
				}
			},
		},
		{
			name:  "unset flags keep config values",
			setup: func(cfg *config.Config) { cfg.Viewer.InitialQuery = "from file"; cfg.Log.Output = "viewer.log" },
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Viewer.InitialQuery != "from file" || cfg.Log.Output != "viewer.log" {
					t.Errorf("config = %+v", cfg)
				}
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var flags viewerFlags
			flagSet := newFlagSet(&flags)
			if err := flagSet.Parse(test.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			cfg := config.Default()
			test.setup(cfg)

			applyFlags(cfg, flagSet, &flags)

			test.check(t, cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
