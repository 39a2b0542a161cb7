// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

// ImageRef is an opaque image identifier. The store never interprets
// it; presentation layers resolve it to whatever they can display.
type ImageRef string

// String returns the string form of the image reference.
func (ref ImageRef) String() string { return string(ref) }

// Item is one row in the filtered list. Items are compared by value.
type Item struct {
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle" yaml:"subtitle"`
	ImageRef ImageRef `json:"image" yaml:"image"`
}

// ImageGroup backs one carousel card: an image plus the items
// associated with it.
type ImageGroup struct {
	ImageRef ImageRef `json:"image" yaml:"image"`
	Items    []Item   `json:"items" yaml:"items"`
}

// Flatten concatenates the items of every group in group order. The
// result is a new slice; the groups are not modified.
func Flatten(groups []ImageGroup) []Item {
	total := 0
	for _, group := range groups {
		total += len(group.Items)
	}
	items := make([]Item, 0, total)
	for _, group := range groups {
		items = append(items, group.Items...)
	}
	return items
}

// DummyImage is the placeholder image reference used by the built-in
// catalog.
const DummyImage ImageRef = "dummyimage"

// DummyGroups returns the built-in catalog: two groups holding three
// items in total. Each call returns fresh slices.
func DummyGroups() []ImageGroup {
	return []ImageGroup{
		{
			ImageRef: DummyImage,
			Items: []Item{
				{Title: "List item title 1", Subtitle: "List item subtitle 1", ImageRef: DummyImage},
				{Title: "List item title 2", Subtitle: "List item subtitle 2", ImageRef: DummyImage},
			},
		},
		{
			ImageRef: DummyImage,
			Items: []Item{
				{Title: "List item title 3", Subtitle: "List item subtitle 3", ImageRef: DummyImage},
			},
		},
	}
}
