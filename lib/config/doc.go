// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the carousel
// binaries.
//
// Configuration is loaded from a single file specified by either the
// CAROUSEL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Running without
// a config file is allowed: the binaries start from [Default], which
// serves the built-in static catalog.
//
// Variable expansion is performed on path-like fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values; command-line flags
// that were set explicitly override the file.
//
// Key exports:
//
//   - [Config] -- master struct with Catalog, Viewer, Log
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every problem at once
//
// This package depends on no other carousel packages.
package config
