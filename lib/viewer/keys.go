// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the carousel screen.
type KeyMap struct {
	// List navigation (also scrolls the bottom sheet while it is open).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Carousel scrolling.
	CarouselLeft  key.Binding
	CarouselRight key.Binding

	// Search box.
	SearchActivate key.Binding // Focus the search box.
	SearchDone     key.Binding // Leave the search box, keeping the query.
	SearchClear    key.Binding // Clear the query.

	// MoreOptions toggles the bottom sheet.
	MoreOptions key.Binding

	// Retry reloads an unavailable catalog.
	Retry key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k, h/l) alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	CarouselLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "carousel"),
	),
	CarouselRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "carousel"),
	),
	SearchActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchDone: key.NewBinding(
		key.WithKeys("enter", "esc", "tab"),
		key.WithHelp("Enter", "done"),
	),
	SearchClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear search"),
	),
	MoreOptions: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "more options"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
