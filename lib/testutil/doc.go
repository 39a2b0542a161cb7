// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for carousel packages.
//
// [RequireReceive], [RequireClosed], and [RequireNoReceive] wrap the
// select-with-timeout pattern used whenever a test waits on a channel
// published by the catalog store or the query engine. They are the
// only place in the test suite where wall-clock timeouts appear.
//
// [RequireEventually] drains a latest-value channel until a predicate
// holds, for tests that race a publisher and only care about the value
// that eventually settles.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
