// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/carousel/lib/catalog"
)

// Layout constants. Every list row is two lines: title, then subtitle.
const (
	headerHeight   = 1
	carouselHeight = 4 // Rounded border around two content lines.
	searchHeight   = 1
	footerHeight   = 2 // Separator and help bar.
	rowHeight      = 2

	cardInnerWidth = 22
	cardGap        = 1

	// sheetChrome is the border (2 lines) plus the title line.
	sheetChrome = 3
)

// listLines is the height available to the list and the bottom sheet.
func (model Model) listLines() int {
	// One separator line sits between the search box and the list.
	return max(model.height-headerHeight-carouselHeight-searchHeight-1-footerHeight, 0)
}

// sheetHeight is the total height of the bottom sheet, or 0 when it is
// closed. The sheet takes at most two thirds of the list area.
func (model Model) sheetHeight() int {
	if model.focusRegion != FocusSheet {
		return 0
	}
	return model.sheetBodyLines() + sheetChrome
}

// sheetBodyLines is how many titles the open sheet shows at once.
func (model Model) sheetBodyLines() int {
	available := model.listLines()*2/3 - sheetChrome
	return max(min(len(model.state.Items), available), 1)
}

// visibleRows is the number of list rows that fit above the sheet.
func (model Model) visibleRows() int {
	return max((model.listLines()-model.sheetHeight())/rowHeight, 0)
}

// visibleCards is the number of carousel cards that fit beside the two
// scroll indicator columns.
func (model Model) visibleCards() int {
	return max((model.width-2+cardGap)/(cardInnerWidth+2+cardGap), 1)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{
		model.renderHeader(),
		model.renderCarousel(),
		model.renderSearch(),
		model.renderSeparator(),
		model.renderListArea(),
		model.renderSeparator(),
		model.renderHelp(),
	}
	return strings.Join(sections, "\n")
}

func (model Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	infoStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	title := titleStyle.Render("Carousel")

	var info string
	switch model.state.Catalog {
	case catalog.StatusReady:
		info = fmt.Sprintf("%d matches · %d groups · rev %s",
			len(model.state.Items), len(model.groups), model.state.Revision)
	default:
		info = model.state.Catalog.String()
	}
	info = infoStyle.Render(info)

	gap := model.width - lipgloss.Width(title) - lipgloss.Width(info)
	if gap < 1 {
		return ansi.Truncate(title, model.width, "")
	}
	return title + strings.Repeat(" ", gap) + info
}

// renderCarousel renders the visible cards between scroll indicators.
func (model Model) renderCarousel() string {
	indicatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Height(carouselHeight).
		Width(1)

	if len(model.groups) == 0 {
		placeholder := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Width(model.width).
			Height(carouselHeight).
			Align(lipgloss.Center, lipgloss.Center)
		return placeholder.Render("no carousel groups")
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.CardBorder).
		Width(cardInnerWidth)
	accentStyle := lipgloss.NewStyle().Foreground(model.theme.CardAccent)
	countStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	end := min(model.carouselOffset+model.visibleCards(), len(model.groups))
	parts := []string{}
	leftIndicator := " "
	if model.carouselOffset > 0 {
		leftIndicator = "‹"
	}
	parts = append(parts, indicatorStyle.Render(leftIndicator))

	for index := model.carouselOffset; index < end; index++ {
		group := model.groups[index]
		content := accentStyle.Render(ansi.Truncate(group.ImageRef.String(), cardInnerWidth, "…")) + "\n" +
			countStyle.Render(itemCount(len(group.Items)))
		if index > model.carouselOffset {
			parts = append(parts, strings.Repeat(" ", cardGap))
		}
		parts = append(parts, cardStyle.Render(content))
	}

	rightIndicator := " "
	if end < len(model.groups) {
		rightIndicator = "›"
	}
	parts = append(parts, indicatorStyle.Render(rightIndicator))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func itemCount(count int) string {
	if count == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", count)
}

// renderSearch renders the search box with the "More Options" action
// right-aligned on the same line.
func (model Model) renderSearch() string {
	actionStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	if model.focusRegion == FocusSheet {
		actionStyle = actionStyle.Foreground(model.theme.SheetBorder).Bold(true)
	}
	action := actionStyle.Render("[m] More Options")

	input := model.search.View()
	available := model.width - lipgloss.Width(action) - 1
	if available < 1 {
		return ansi.Truncate(input, model.width, "")
	}
	input = ansi.Truncate(input, available, "…")
	gap := model.width - lipgloss.Width(input) - lipgloss.Width(action)
	return input + strings.Repeat(" ", max(gap, 1)) + action
}

func (model Model) renderSeparator() string {
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
}

// renderListArea renders the item rows and, when open, the bottom
// sheet below them, filling exactly listLines lines.
func (model Model) renderListArea() string {
	total := model.listLines()
	sheet := ""
	if model.focusRegion == FocusSheet {
		sheet = model.renderSheet()
	}
	listHeight := max(total-model.sheetHeight(), 0)
	if listHeight == 0 {
		return sheet
	}

	var body string
	if status := model.statusText(); status != "" {
		body = lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Width(model.width).
			Height(listHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render(status)
	} else if len(model.state.Items) == 0 {
		body = lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Width(model.width).
			Height(listHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render(fmt.Sprintf("No items match %q.", model.state.Query))
	} else {
		body = model.renderRows(listHeight)
	}

	if sheet == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, sheet)
}

// renderRows renders the visible list rows, padded to height lines.
func (model Model) renderRows(height int) string {
	var lines []string
	visible := model.visibleRows()
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.state.Items); index++ {
		lines = append(lines, model.renderRow(model.state.Items[index], index == model.cursor)...)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	return lipgloss.NewStyle().Width(model.width).Render(strings.Join(lines, "\n"))
}

// renderRow renders one item as a title line (with its image reference
// right-aligned) and a subtitle line. Matched query text is
// highlighted in both.
func (model Model) renderRow(item catalog.Item, selected bool) []string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	subtitleStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	imageStyle := lipgloss.NewStyle().Foreground(model.theme.CardAccent)
	matchStyle := lipgloss.NewStyle().
		Background(model.theme.MatchBackground).
		Foreground(model.theme.MatchForeground)

	marker := "  "
	if selected {
		marker = "▸ "
		titleStyle = titleStyle.Foreground(model.theme.SelectedForeground).Bold(true)
	}

	image := ""
	if item.ImageRef != "" {
		image = " " + ansi.Truncate(item.ImageRef.String(), cardInnerWidth, "…")
	}
	titleWidth := max(model.width-lipgloss.Width(marker)-lipgloss.Width(image), 1)
	subtitleWidth := max(model.width-lipgloss.Width(marker), 1)

	title := model.highlight(ansi.Truncate(item.Title, titleWidth, "…"), titleStyle, matchStyle)
	subtitle := model.highlight(ansi.Truncate(item.Subtitle, subtitleWidth, "…"), subtitleStyle, matchStyle)

	gap := max(titleWidth-lipgloss.Width(title), 0)
	first := marker + title + strings.Repeat(" ", gap) + imageStyle.Render(image)
	second := "  " + subtitle

	if selected {
		rowStyle := lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Width(model.width)
		first = rowStyle.Render(first)
		second = rowStyle.Render(second)
	}
	return []string{first, second}
}

func (model Model) highlight(text string, base, match lipgloss.Style) string {
	start, end, ok := matchSpan(text, model.highlightPattern, model.slab)
	if !ok {
		return base.Render(text)
	}
	return renderHighlighted(text, start, end, base, match)
}

// renderSheet renders the bottom sheet: a bordered box whose title is
// the configured heading and whose body lists the titles of the
// current matches.
func (model Model) renderSheet() string {
	innerWidth := max(model.width-2, 1)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	bodyStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	heading := model.sheetTitle
	if count := len(model.state.Items); count > model.sheetBodyLines() {
		heading += faintStyle.Render(fmt.Sprintf("  %d-%d of %d",
			model.sheetScroll+1, model.sheetScroll+model.sheetBodyLines(), count))
	}
	lines := []string{titleStyle.Render(ansi.Truncate(heading, innerWidth, "…"))}

	if len(model.state.Items) == 0 {
		lines = append(lines, faintStyle.Render("No items"))
	} else {
		end := min(model.sheetScroll+model.sheetBodyLines(), len(model.state.Items))
		for _, item := range model.state.Items[model.sheetScroll:end] {
			lines = append(lines, bodyStyle.Render(ansi.Truncate(item.Title, innerWidth, "…")))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.SheetBorder).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// renderHelp renders the key help line, or the latest log message
// while one is showing.
func (model Model) renderHelp() string {
	if model.statusMessage != "" {
		color := model.theme.WarningForeground
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		return lipgloss.NewStyle().
			Foreground(color).
			Render(ansi.Truncate(model.statusMessage, model.width, "…"))
	}

	var bindings []key.Binding
	switch model.focusRegion {
	case FocusSearch:
		bindings = []key.Binding{model.keys.SearchDone}
	case FocusSheet:
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.MoreOptions, model.keys.Quit}
	default:
		bindings = []key.Binding{
			model.keys.SearchActivate, model.keys.Up, model.keys.Down,
			model.keys.CarouselLeft, model.keys.MoreOptions,
		}
		if model.search.Value() != "" {
			bindings = append(bindings, model.keys.SearchClear)
		}
		if model.state.Catalog == catalog.StatusUnavailable {
			bindings = append(bindings, model.keys.Retry)
		}
		bindings = append(bindings, model.keys.Quit)
	}

	keyStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	descriptionStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, keyStyle.Render(help.Key)+" "+descriptionStyle.Render(help.Desc))
	}
	return ansi.Truncate(strings.Join(parts, "  "), model.width, "…")
}
