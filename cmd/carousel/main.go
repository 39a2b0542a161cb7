// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// carousel is the one-shot command line for the carousel catalog:
// list groups, run a search, count the most frequent characters among
// the matches, export the catalog to a file, and prepare a Postgres
// database to serve it.
//
// Catalog selection follows carousel-viewer: --catalog for a file,
// --dsn for Postgres, otherwise the config file, otherwise the
// built-in dummy catalog.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/carousel/lib/cli"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
