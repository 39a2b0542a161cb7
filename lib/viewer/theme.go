// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the carousel screen. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Carousel cards.
	CardBorder  lipgloss.Color
	CardAccent  lipgloss.Color // Image reference line inside a card.
	SheetBorder lipgloss.Color

	// Search match highlighting.
	MatchBackground lipgloss.Color
	MatchForeground lipgloss.Color

	// Status bar messages.
	WarningForeground lipgloss.Color
	ErrorForeground   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("245"),

	CardBorder:  lipgloss.Color("61"),
	CardAccent:  lipgloss.Color("180"),
	SheetBorder: lipgloss.Color("75"),

	MatchBackground: lipgloss.Color("58"),
	MatchForeground: lipgloss.Color("229"),

	WarningForeground: lipgloss.Color("214"),
	ErrorForeground:   lipgloss.Color("203"),
}
