// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/config"
	"github.com/bureau-foundation/carousel/lib/query"
)

// FocusRegion identifies which part of the screen receives keystrokes.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor and scroll
	// the carousel.
	FocusList FocusRegion = iota
	// FocusSearch means keystrokes edit the search box.
	FocusSearch
	// FocusSheet means the bottom sheet is open; navigation keys
	// scroll it.
	FocusSheet
)

// loadTimeout bounds a single catalog load started from the screen.
const loadTimeout = 30 * time.Second

// stateMsg wraps a query state published by the engine.
type stateMsg struct {
	state query.State
}

// catalogMsg wraps a catalog snapshot published by the store.
type catalogMsg struct {
	snapshot catalog.Snapshot
}

// loadResultMsg reports the outcome of an Initialize call started by
// the screen. The resulting snapshot arrives separately via catalogMsg
// and stateMsg; this only ends the "loading" indicator.
type loadResultMsg struct {
	err error
}

// Options configures a Model.
type Options struct {
	// InitialQuery is placed in the search box and sent to the engine
	// before the catalog loads.
	InitialQuery string

	// SheetTitle heads the bottom sheet. Empty means
	// config.DefaultSheetTitle.
	SheetTitle string

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Model is the top-level bubbletea model for the carousel screen.
type Model struct {
	engine *query.Engine
	store  *catalog.Store
	theme  Theme
	keys   KeyMap
	logger *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focusRegion FocusRegion
	search      textinput.Model

	// state is the last engine state shown. Items always match
	// state.Query, which may lag the search box by a keystroke.
	state query.State
	// groups backs the carousel row.
	groups []catalog.ImageGroup

	// List position.
	cursor       int
	scrollOffset int

	// Carousel position: index of the leftmost visible card.
	carouselOffset int

	// Bottom sheet.
	sheetTitle  string
	sheetScroll int

	// Lowercased query runes for match highlighting, and the slab fzf
	// reuses across calls.
	highlightPattern []rune
	slab             *util.Slab

	// loading is true while an Initialize started by the screen runs.
	loading bool

	// Status bar message from the log handler or a failed load.
	statusMessage    string
	statusLevel      slog.Level
	statusGeneration int

	states    <-chan query.State
	snapshots <-chan catalog.Snapshot
}

// NewModel creates a Model showing engine's states and store's
// carousel groups. The engine must be running (or about to be). Init
// starts the first catalog load.
func NewModel(engine *query.Engine, store *catalog.Store, options Options) Model {
	sheetTitle := options.SheetTitle
	if sheetTitle == "" {
		sheetTitle = config.DefaultSheetTitle
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or subtitle"
	search.SetValue(options.InitialQuery)
	if options.InitialQuery != "" {
		engine.SetQuery(options.InitialQuery)
	}

	return Model{
		engine:     engine,
		store:      store,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		logger:     logger,
		search:     search,
		state:      engine.State(),
		sheetTitle: sheetTitle,
		slab:       util.MakeSlab(100*1024, 2048),
		loading:    true,
		states:     engine.Subscribe(),
		snapshots:  store.Subscribe(),
	}
}

// Init implements tea.Model. Starts the listeners and the first
// catalog load.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenForState(model.states),
		listenForCatalog(model.snapshots),
		loadCatalog(model.store),
	)
}

// listenForState returns a tea.Cmd that blocks until the engine
// publishes a state, then delivers it as a stateMsg.
func listenForState(channel <-chan query.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-channel
		if !ok {
			return nil
		}
		return stateMsg{state: state}
	}
}

// listenForCatalog returns a tea.Cmd that blocks until the store
// publishes a snapshot, then delivers it as a catalogMsg.
func listenForCatalog(channel <-chan catalog.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-channel
		if !ok {
			return nil
		}
		return catalogMsg{snapshot: snapshot}
	}
}

// loadCatalog runs Store.Initialize off the UI goroutine.
func loadCatalog(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		_, err := store.Initialize(ctx)
		return loadResultMsg{err: err}
	}
}

// Update implements tea.Model. Routes keyboard events by focus region
// and applies published state.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focusRegion {
		case FocusSearch:
			return model.handleSearchKeys(message)
		case FocusSheet:
			return model.handleSheetKeys(message)
		default:
			return model.handleListKeys(message)
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.search.Width = max(message.Width-len(model.search.Prompt)-1, 1)
		model.clampCarousel()
		model.ensureCursorVisible()
		model.clampSheetScroll()

	case stateMsg:
		model.applyState(message.state)
		return model, listenForState(model.states)

	case catalogMsg:
		model.groups = message.snapshot.Groups
		model.clampCarousel()
		return model, listenForCatalog(model.snapshots)

	case loadResultMsg:
		model.loading = false
		if message.err != nil {
			model.logger.Warn("catalog load failed", "error", message.err)
		}

	case logRecordMsg:
		model.statusGeneration++
		model.statusMessage = message.Summary
		model.statusLevel = message.Level
		generation := model.statusGeneration
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Generation: generation}
		})

	case logRecordFadeMsg:
		if message.Generation == model.statusGeneration {
			model.statusMessage = ""
		}
	}
	return model, nil
}

// applyState replaces the displayed list with state, ignoring states
// older than the one already shown.
func (model *Model) applyState(state query.State) {
	if state.Version != 0 && state.Version < model.state.Version {
		return
	}
	queryChanged := state.Query != model.state.Query
	model.state = state
	model.highlightPattern = matchPattern(state.Query)

	if queryChanged {
		// New results start from the top, like a fresh search.
		model.cursor = 0
		model.scrollOffset = 0
		model.sheetScroll = 0
	}
	model.cursor = model.clampedIndex(model.cursor)
	model.ensureCursorVisible()
	model.clampSheetScroll()
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.SearchActivate):
		model.focusRegion = FocusSearch
		return model, model.search.Focus()

	case key.Matches(message, model.keys.SearchClear):
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.engine.SetQuery("")
		}

	case key.Matches(message, model.keys.MoreOptions):
		model.focusRegion = FocusSheet
		model.sheetScroll = 0

	case key.Matches(message, model.keys.Retry):
		if model.state.Catalog == catalog.StatusUnavailable && !model.loading {
			model.loading = true
			return model, loadCatalog(model.store)
		}

	case key.Matches(message, model.keys.CarouselLeft):
		model.carouselOffset--
		model.clampCarousel()

	case key.Matches(message, model.keys.CarouselRight):
		model.carouselOffset++
		model.clampCarousel()

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.state.Items)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.cursor = model.clampedIndex(model.cursor - model.visibleRows())

	case key.Matches(message, model.keys.PageDown):
		model.cursor = model.clampedIndex(model.cursor + model.visibleRows())

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		model.cursor = model.clampedIndex(len(model.state.Items) - 1)
	}

	model.ensureCursorVisible()
	return model, nil
}

// handleSearchKeys routes input to the search box and forwards every
// change of its value to the engine verbatim.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if key.Matches(message, model.keys.SearchDone) {
		model.focusRegion = FocusList
		model.search.Blur()
		return model, nil
	}

	previous := model.search.Value()
	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	if value := model.search.Value(); value != previous {
		model.engine.SetQuery(value)
	}
	return model, cmd
}

func (model Model) handleSheetKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.MoreOptions), message.Type == tea.KeyEsc:
		model.focusRegion = FocusList

	case key.Matches(message, model.keys.Up):
		model.sheetScroll--
		model.clampSheetScroll()

	case key.Matches(message, model.keys.Down):
		model.sheetScroll++
		model.clampSheetScroll()

	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	}
	return model, nil
}

// clampedIndex limits position to the item range, or 0 when empty.
func (model *Model) clampedIndex(position int) int {
	if position >= len(model.state.Items) {
		position = len(model.state.Items) - 1
	}
	if position < 0 {
		position = 0
	}
	return position
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within
// the visible window.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleRows()
	if visible <= 0 {
		return
	}

	maxOffset := max(len(model.state.Items)-visible, 0)
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

func (model *Model) clampCarousel() {
	maxOffset := max(len(model.groups)-model.visibleCards(), 0)
	model.carouselOffset = min(max(model.carouselOffset, 0), maxOffset)
}

func (model *Model) clampSheetScroll() {
	maxScroll := max(len(model.state.Items)-model.sheetBodyLines(), 0)
	model.sheetScroll = min(max(model.sheetScroll, 0), maxScroll)
}

// Focus returns the region that currently receives keystrokes.
func (model Model) Focus() FocusRegion { return model.focusRegion }

// State returns the engine state the screen is showing.
func (model Model) State() query.State { return model.state }

// statusText describes a catalog that is not ready, or "" when it is.
func (model Model) statusText() string {
	switch model.state.Catalog {
	case catalog.StatusPending:
		return "Loading catalog..."
	case catalog.StatusUnavailable:
		if model.loading {
			return "Retrying..."
		}
		text := "Catalog unavailable."
		if model.state.Err != nil {
			text = fmt.Sprintf("Catalog unavailable: %v", model.state.Err)
		}
		return text + " Press r to retry."
	default:
		return ""
	}
}
