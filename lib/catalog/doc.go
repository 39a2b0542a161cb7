// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog is the data store behind the carousel screen. It owns
// the canonical list of [ImageGroup] values shown as carousel cards and
// the flattened [Item] list derived from them.
//
// A [Store] loads groups from a [Source] and publishes immutable
// [Snapshot] values to subscribers. The query engine consumes the
// snapshot's Items opaquely, so the source can be swapped without
// touching anything downstream:
//
//   - [StaticSource] serves fixed groups; [DefaultSource] is the two
//     group, three item dummy catalog.
//   - [FileSource] reads a catalog file (JSON, JSONC, JSONL, YAML or
//     CBOR, optionally zstd or lz4 compressed) and [WatchFile] reloads
//     it on change via inotify.
//   - [PostgresSource] reads groups and items from Postgres.
//
// A failed load never crashes the screen. The store publishes a
// snapshot with [StatusUnavailable] and empty lists, and the caller
// retries by calling [Store.Initialize] again.
//
// Data flow:
//
//	[static / file / postgres]
//	        | (Source interface)
//	     [Store] -> Snapshot subscribers (query engine, carousel row)
package catalog
