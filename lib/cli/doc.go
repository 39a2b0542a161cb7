// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the carousel binaries:
// categorized errors that map to exit codes, logger construction,
// JSON output, and catalog source selection from configuration.
//
// Command handlers return [ToolError] values built with the category
// constructors ([Validation], [NotFound], [Unavailable], [Internal]).
// main functions pass the returned error to [ExitCode] to pick the
// process exit status.
package cli
