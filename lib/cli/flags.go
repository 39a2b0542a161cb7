// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/carousel/lib/config"
)

// Flag names shared by every binary that selects a catalog source.
const (
	CatalogFlag = "catalog"
	DSNFlag     = "dsn"
)

// ApplyCatalogFlags copies --catalog and --dsn over catalogConfig when
// they were set explicitly on flags. A flag wins over the config file:
// choosing one source clears the other one that came from the file.
// Setting both flags keeps both, and Validate rejects the pair.
func ApplyCatalogFlags(catalogConfig *config.CatalogConfig, flags *pflag.FlagSet, path, dsn string) {
	pathSet := flags.Changed(CatalogFlag)
	dsnSet := flags.Changed(DSNFlag)
	if pathSet {
		catalogConfig.Path = path
		if !dsnSet {
			catalogConfig.DSN = ""
		}
	}
	if dsnSet {
		catalogConfig.DSN = dsn
		if !pathSet {
			catalogConfig.Path = ""
			catalogConfig.Watch = false
		}
	}
}
