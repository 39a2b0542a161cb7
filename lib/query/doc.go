// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package query derives what the carousel screen shows from the
// catalog and the search text.
//
// [Filter] and [TopCharacters] are pure functions over a flattened
// item list. [Engine] wraps them in a single-goroutine actor that owns
// the current query: it consumes catalog snapshots from a [Feed],
// applies search text updates in arrival order, and publishes each
// derived [State] through a latest-value broadcast. Every published
// State carries the query it was computed from, so a consumer never
// sees items that disagree with the text beside them.
//
// Nothing is published until the catalog has finished loading at
// least once. Queries set before that are remembered and the first
// published State is computed from the most recent one.
package query
