// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/carousel/lib/config"
)

func parseCatalogFlags(t *testing.T, args ...string) (*pflag.FlagSet, string, string) {
	t.Helper()
	var path, dsn string
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&path, CatalogFlag, "", "")
	flags.StringVar(&dsn, DSNFlag, "", "")
	if err := flags.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return flags, path, dsn
}

func TestApplyCatalogFlags(t *testing.T) {
	tests := []struct {
		name      string
		file      config.CatalogConfig
		args      []string
		want      config.CatalogConfig
		wantValid bool
	}{
		{
			name:      "no flags keeps the file",
			file:      config.CatalogConfig{DSN: "postgres://localhost/carousel"},
			want:      config.CatalogConfig{DSN: "postgres://localhost/carousel"},
			wantValid: true,
		},
		{
			name:      "catalog flag replaces a configured dsn",
			file:      config.CatalogConfig{DSN: "postgres://localhost/carousel"},
			args:      []string{"--catalog", "items.yaml"},
			want:      config.CatalogConfig{Path: "items.yaml"},
			wantValid: true,
		},
		{
			name:      "dsn flag replaces a configured watched path",
			file:      config.CatalogConfig{Path: "items.yaml", Watch: true},
			args:      []string{"--dsn", "postgres://db/carousel"},
			want:      config.CatalogConfig{DSN: "postgres://db/carousel"},
			wantValid: true,
		},
		{
			name:      "catalog flag keeps watch from the file",
			file:      config.CatalogConfig{Path: "old.json", Watch: true},
			args:      []string{"--catalog", "new.json"},
			want:      config.CatalogConfig{Path: "new.json", Watch: true},
			wantValid: true,
		},
		{
			name:      "both flags conflict",
			args:      []string{"--catalog", "items.yaml", "--dsn", "postgres://db/carousel"},
			want:      config.CatalogConfig{Path: "items.yaml", DSN: "postgres://db/carousel"},
			wantValid: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flags, path, dsn := parseCatalogFlags(t, test.args...)
			cfg := config.Default()
			cfg.Catalog = test.file
			ApplyCatalogFlags(&cfg.Catalog, flags, path, dsn)

			if cfg.Catalog != test.want {
				t.Errorf("catalog = %+v, want %+v", cfg.Catalog, test.want)
			}
			if err := cfg.Validate(); (err == nil) != test.wantValid {
				t.Errorf("Validate() = %v, want valid %v", err, test.wantValid)
			}
		})
	}
}
