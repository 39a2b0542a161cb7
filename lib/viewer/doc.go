// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewer is the terminal presentation layer for the carousel
// screen, built on bubbletea.
//
// The screen stacks a carousel row with one card per image group, a
// search box, and the filtered item list. A bottom sheet (key m)
// lists the titles of the current matches. The model holds no
// filtering logic: keystrokes in the search box are forwarded to a
// [query.Engine], and the list shows whatever [query.State] the
// engine last published. Carousel cards come from the
// [catalog.Store] snapshots directly.
//
// Background logging is routed into the status bar by
// [TUILogHandler], since writing to stderr would corrupt the alt
// screen.
package viewer
