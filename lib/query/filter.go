// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"strings"

	"github.com/bureau-foundation/carousel/lib/catalog"
)

// IsBlank reports whether query is empty or only whitespace. A blank
// query matches every item.
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Filter returns the items whose title or subtitle contains query as
// a case-insensitive substring, in their original order. A blank
// query returns items itself.
//
// The query is used as typed: surrounding whitespace is significant
// once the query has any other content, so "title " and "title" can
// select different rows.
func Filter(items []catalog.Item, query string) []catalog.Item {
	if IsBlank(query) {
		return items
	}

	needle := strings.ToLower(query)
	matches := []catalog.Item{}
	for _, item := range items {
		if matchesLowered(item, needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

// Matches reports whether a single item passes the filter for query.
func Matches(item catalog.Item, query string) bool {
	if IsBlank(query) {
		return true
	}
	return matchesLowered(item, strings.ToLower(query))
}

func matchesLowered(item catalog.Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Subtitle), needle)
}
