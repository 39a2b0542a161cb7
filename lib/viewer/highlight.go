// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// matchPattern prepares a query for highlighting: lowercased runes,
// or nil when the query is blank and nothing should be highlighted.
func matchPattern(query string) []rune {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return []rune(strings.ToLower(query))
}

// matchSpan returns the rune range [start, end) of a case-insensitive
// occurrence of pattern in text, as chosen by fzf's exact matcher. The pattern must
// already be lowercased (see matchPattern).
//
// This only drives presentation. Which rows appear is decided by the
// query engine; a row whose title does not contain the query (because
// its subtitle matched) simply has no span.
func matchSpan(text string, pattern []rune, slab *util.Slab) (int, int, bool) {
	if len(pattern) == 0 || text == "" {
		return 0, 0, false
	}
	chars := util.ToChars([]byte(text))
	result, _ := algo.ExactMatchNaive(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 || result.End <= result.Start {
		return 0, 0, false
	}
	return result.Start, result.End, true
}

// renderHighlighted renders text with base, switching to match for the
// runes in [start, end).
func renderHighlighted(text string, start, end int, base, match lipgloss.Style) string {
	runes := []rune(text)
	if start < 0 || end > len(runes) || start >= end {
		return base.Render(text)
	}
	return base.Render(string(runes[:start])) +
		match.Render(string(runes[start:end])) +
		base.Render(string(runes[end:]))
}
