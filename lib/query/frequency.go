// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"cmp"
	"fmt"
	"slices"
	"unicode"

	"github.com/bureau-foundation/carousel/lib/catalog"
)

// TopCharacterLimit is the maximum number of entries TopCharacters
// returns.
const TopCharacterLimit = 3

// CharacterCount is one entry of a character frequency tally.
type CharacterCount struct {
	Character rune `json:"character"`
	Count     int  `json:"count"`
}

// String formats the entry as 'c'=n.
func (count CharacterCount) String() string {
	return fmt.Sprintf("%q=%d", count.Character, count.Count)
}

// TopCharacters counts the letters and digits in every item's title
// followed by its subtitle and returns the most frequent ones, highest
// count first. Counting is case-sensitive: 'A' and 'a' are separate
// entries. Characters with equal counts keep the order in which they
// were first encountered.
//
// The result has at most [TopCharacterLimit] entries and is never
// padded; items with no letters or digits produce an empty slice.
func TopCharacters(items []catalog.Item) []CharacterCount {
	index := make(map[rune]int)
	tally := []CharacterCount{}
	for _, item := range items {
		for _, text := range [...]string{item.Title, item.Subtitle} {
			for _, character := range text {
				if !unicode.IsLetter(character) && !unicode.IsDigit(character) {
					continue
				}
				position, seen := index[character]
				if !seen {
					position = len(tally)
					index[character] = position
					tally = append(tally, CharacterCount{Character: character})
				}
				tally[position].Count++
			}
		}
	}

	slices.SortStableFunc(tally, func(a, b CharacterCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(tally) > TopCharacterLimit {
		tally = tally[:TopCharacterLimit]
	}
	return tally
}
