// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/carousel/lib/broadcast"
	"github.com/bureau-foundation/carousel/lib/catalog"
)

// ErrStopped is returned by [Engine.Sync] once Run has returned.
var ErrStopped = errors.New("query engine stopped")

// Feed supplies catalog snapshots. *catalog.Store implements it.
type Feed interface {
	Subscribe() <-chan catalog.Snapshot
	Unsubscribe(<-chan catalog.Snapshot)
}

// State is one published view of the screen's filtered list.
type State struct {
	// Version increases by one with every published State. Consumers
	// that receive states through more than one path can discard
	// anything older than what they already show.
	Version uint64

	// Query is the raw search text, exactly as last set.
	Query string

	// Items is Filter(canonical items, Query). When Query is blank it
	// is the catalog's own slice; it must not be modified.
	Items []catalog.Item

	// Catalog is the status of the snapshot Items was derived from.
	// With StatusUnavailable, Items is empty and Err holds the load
	// failure.
	Catalog  catalog.Status
	Revision catalog.Revision
	Err      error
}

// Engine owns the current query and publishes derived states. All
// mutation happens on the goroutine running [Engine.Run]; the public
// methods only post commands to an unbounded mailbox, so callers on a
// UI thread never block.
type Engine struct {
	feed   Feed
	logger *slog.Logger

	mailboxMutex sync.Mutex
	mailbox      []command
	wake         chan struct{}
	done         chan struct{}

	states     broadcast.Latest[State]
	characters broadcast.Latest[[]CharacterCount]

	// Owned by the Run goroutine.
	query    string
	snapshot catalog.Snapshot
	version  uint64
}

type commandKind int

const (
	commandSetQuery commandKind = iota
	commandTopCharacters
	commandSync
)

type command struct {
	kind  commandKind
	text  string
	items []catalog.Item
	reply chan State
}

// NewEngine creates an engine that filters the snapshots published by
// feed. Call Run to start it.
func NewEngine(feed Feed, logger *slog.Logger) *Engine {
	return &Engine{
		feed:     feed,
		logger:   logger,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		snapshot: catalog.Snapshot{Status: catalog.StatusPending},
	}
}

// SetQuery replaces the search text. The new State is published once
// the engine applies the command; if several updates arrive together,
// each is applied in order and the last one wins.
func (engine *Engine) SetQuery(text string) {
	engine.post(command{kind: commandSetQuery, text: text})
}

// RequestTopCharacters computes [TopCharacters] of items and publishes
// the result to [Engine.SubscribeTopCharacters] subscribers.
func (engine *Engine) RequestTopCharacters(items []catalog.Item) {
	engine.post(command{kind: commandTopCharacters, items: items})
}

// Sync waits until every command posted before it has been applied and
// returns the engine's state at that point. The state also reflects
// every catalog snapshot published before Sync was called. Before the catalog has
// loaded, the returned State has Catalog == StatusPending and no items;
// that state is never published.
func (engine *Engine) Sync(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	engine.post(command{kind: commandSync, reply: reply})
	select {
	case state := <-reply:
		return state, nil
	case <-engine.done:
		// Run may have answered just before returning.
		select {
		case state := <-reply:
			return state, nil
		default:
			return State{}, ErrStopped
		}
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// State returns the most recently published state, or a pending state
// carrying no items if nothing has been published.
func (engine *Engine) State() State {
	state, published := engine.states.Value()
	if !published {
		return State{Catalog: catalog.StatusPending}
	}
	return state
}

// Subscribe returns a channel that receives published states with
// latest-value semantics. If a state has been published, it is
// delivered immediately.
func (engine *Engine) Subscribe() <-chan State {
	return engine.states.Subscribe()
}

// Unsubscribe closes and removes a channel returned by Subscribe.
func (engine *Engine) Unsubscribe(subscription <-chan State) {
	engine.states.Unsubscribe(subscription)
}

// SubscribeTopCharacters returns a channel that receives the result of
// every RequestTopCharacters call, latest value first.
func (engine *Engine) SubscribeTopCharacters() <-chan []CharacterCount {
	return engine.characters.Subscribe()
}

// UnsubscribeTopCharacters closes and removes a channel returned by
// SubscribeTopCharacters.
func (engine *Engine) UnsubscribeTopCharacters(subscription <-chan []CharacterCount) {
	engine.characters.Unsubscribe(subscription)
}

// Run applies commands and catalog snapshots until ctx is cancelled.
// It closes every subscription channel before returning ctx.Err().
// Run must be called exactly once.
func (engine *Engine) Run(ctx context.Context) error {
	defer func() {
		engine.states.Close()
		engine.characters.Close()
		close(engine.done)
	}()

	snapshots := engine.feed.Subscribe()
	defer engine.feed.Unsubscribe(snapshots)

	// A store that loaded before Run started delivers its snapshot on
	// Subscribe. Apply it before any command so the first Sync sees it.
	snapshots = engine.drainSnapshot(snapshots)

	for {
		// Commands posted before Run started are waiting in the mailbox
		// with the wake signal already set, so they are applied on the
		// first iteration that selects it.
		select {
		case <-ctx.Done():
			return ctx.Err()

		case snapshot, ok := <-snapshots:
			if !ok {
				// The store closed; keep serving queries against the
				// last snapshot.
				snapshots = nil
				continue
			}
			engine.applySnapshot(snapshot)

		case <-engine.wake:
			// Take the commands before draining: a snapshot published
			// before any of them was posted is already in the channel,
			// so Sync never answers from an older catalog than its
			// caller has seen.
			commands := engine.takeMailbox()
			snapshots = engine.drainSnapshot(snapshots)
			for _, pending := range commands {
				engine.apply(pending)
			}
		}
	}
}

// drainSnapshot applies a snapshot already waiting on snapshots, if
// any. It returns nil once the store has closed the channel.
func (engine *Engine) drainSnapshot(snapshots <-chan catalog.Snapshot) <-chan catalog.Snapshot {
	if snapshots == nil {
		return nil
	}
	select {
	case snapshot, ok := <-snapshots:
		if !ok {
			return nil
		}
		engine.applySnapshot(snapshot)
	default:
	}
	return snapshots
}

func (engine *Engine) post(pending command) {
	engine.mailboxMutex.Lock()
	engine.mailbox = append(engine.mailbox, pending)
	engine.mailboxMutex.Unlock()

	select {
	case engine.wake <- struct{}{}:
	default:
	}
}

func (engine *Engine) takeMailbox() []command {
	engine.mailboxMutex.Lock()
	defer engine.mailboxMutex.Unlock()
	taken := engine.mailbox
	engine.mailbox = nil
	return taken
}

func (engine *Engine) apply(pending command) {
	switch pending.kind {
	case commandSetQuery:
		engine.query = pending.text
		if engine.snapshot.Status == catalog.StatusPending {
			engine.logger.Debug("query held until catalog loads")
			return
		}
		engine.publish()

	case commandTopCharacters:
		engine.characters.Publish(TopCharacters(pending.items))

	case commandSync:
		pending.reply <- engine.current()
	}
}

func (engine *Engine) applySnapshot(snapshot catalog.Snapshot) {
	if snapshot.Status == catalog.StatusPending {
		return
	}
	engine.snapshot = snapshot
	engine.publish()
}

// current derives the state for the current query and snapshot without
// publishing it.
func (engine *Engine) current() State {
	state := State{
		Version:  engine.version,
		Query:    engine.query,
		Catalog:  engine.snapshot.Status,
		Revision: engine.snapshot.Revision,
		Err:      engine.snapshot.Err,
	}
	switch engine.snapshot.Status {
	case catalog.StatusReady:
		state.Items = Filter(engine.snapshot.Items, engine.query)
	default:
		state.Items = []catalog.Item{}
	}
	return state
}

func (engine *Engine) publish() {
	engine.version++
	state := engine.current()
	engine.states.Publish(state)
	engine.logger.Debug("query state published",
		"version", state.Version,
		"catalog", state.Catalog.String(),
		"matches", len(state.Items),
	)
}
