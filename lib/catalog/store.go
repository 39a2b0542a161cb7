// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/carousel/lib/broadcast"
)

// Status describes whether a snapshot carries usable catalog data.
type Status int

const (
	// StatusPending means no load has completed yet.
	StatusPending Status = iota
	// StatusReady means the snapshot holds a successfully loaded catalog.
	StatusReady
	// StatusUnavailable means the last load failed. Groups and Items
	// are empty until a later load succeeds.
	StatusUnavailable
)

// String returns the lowercase status name.
func (status Status) String() string {
	switch status {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(status))
	}
}

// Snapshot is an immutable view of the catalog. Groups and Items are
// shared with every subscriber and must not be modified.
type Snapshot struct {
	// Groups backs the carousel row.
	Groups []ImageGroup

	// Items is Flatten(Groups), computed once per load. This is the
	// canonical list the query engine filters.
	Items []Item

	Status   Status
	Revision Revision

	// Err is the load failure when Status is StatusUnavailable.
	Err error
}

// Store owns the canonical catalog and publishes it to subscribers.
// Loads are serialized; publication uses latest-value semantics, so a
// subscriber that falls behind still ends up with the newest snapshot.
type Store struct {
	source    Source
	logger    *slog.Logger
	loadMutex sync.Mutex
	snapshots broadcast.Latest[Snapshot]
}

// NewStore creates a Store reading from source. Nothing is loaded
// until Initialize is called.
func NewStore(source Source, logger *slog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With("source", source.Name()),
	}
}

// Source returns the store's source.
func (store *Store) Source() Source { return store.source }

// Initialize loads the catalog from the source and publishes the
// result. On failure it publishes an unavailable snapshot with empty
// lists and returns the error; calling Initialize again retries.
//
// A successful load whose revision matches the current ready snapshot
// is not republished.
func (store *Store) Initialize(ctx context.Context) (Snapshot, error) {
	store.loadMutex.Lock()
	defer store.loadMutex.Unlock()

	snapshot, err := store.load(ctx)
	if err != nil {
		unavailable := Snapshot{Status: StatusUnavailable, Err: err}
		store.snapshots.Publish(unavailable)
		store.logger.Warn("catalog unavailable", "error", err)
		return unavailable, err
	}
	return store.publishReady(snapshot), nil
}

// Refresh reloads the catalog like Initialize, except that a failed
// reload keeps the last ready snapshot in place. File watching uses
// Refresh because a reload racing a writer can observe a half-written
// file; the next change event reloads it. If no ready snapshot exists
// yet, Refresh behaves exactly like Initialize.
func (store *Store) Refresh(ctx context.Context) (Snapshot, error) {
	store.loadMutex.Lock()
	defer store.loadMutex.Unlock()

	snapshot, err := store.load(ctx)
	if err != nil {
		current, published := store.snapshots.Value()
		if published && current.Status == StatusReady {
			store.logger.Warn("catalog refresh failed, keeping previous revision",
				"revision", current.Revision.String(),
				"error", err,
			)
			return current, err
		}
		unavailable := Snapshot{Status: StatusUnavailable, Err: err}
		store.snapshots.Publish(unavailable)
		store.logger.Warn("catalog unavailable", "error", err)
		return unavailable, err
	}
	return store.publishReady(snapshot), nil
}

// load fetches and flattens the catalog. Called with loadMutex held.
func (store *Store) load(ctx context.Context) (Snapshot, error) {
	groups, err := store.source.Fetch(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch catalog from %s: %w", store.source.Name(), err)
	}

	revision, err := ComputeRevision(groups)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Groups:   groups,
		Items:    Flatten(groups),
		Status:   StatusReady,
		Revision: revision,
	}, nil
}

// publishReady publishes snapshot unless the current ready snapshot
// already has the same revision. Returns the snapshot now current.
func (store *Store) publishReady(snapshot Snapshot) Snapshot {
	current, published := store.snapshots.Value()
	if published && current.Status == StatusReady && current.Revision == snapshot.Revision {
		store.logger.Debug("catalog unchanged", "revision", snapshot.Revision.String())
		return current
	}

	store.snapshots.Publish(snapshot)
	store.logger.Info("catalog loaded",
		"revision", snapshot.Revision.String(),
		"groups", len(snapshot.Groups),
		"items", len(snapshot.Items),
	)
	return snapshot
}

// Snapshot returns the current snapshot, or a pending snapshot if no
// load has completed.
func (store *Store) Snapshot() Snapshot {
	snapshot, published := store.snapshots.Value()
	if !published {
		return Snapshot{Status: StatusPending}
	}
	return snapshot
}

// Subscribe returns a channel that receives every published snapshot
// (latest-value semantics). If a load has already completed, the
// current snapshot is delivered immediately.
func (store *Store) Subscribe() <-chan Snapshot {
	return store.snapshots.Subscribe()
}

// Unsubscribe closes and removes a channel returned by Subscribe.
func (store *Store) Unsubscribe(subscription <-chan Snapshot) {
	store.snapshots.Unsubscribe(subscription)
}

// Close closes every subscription channel.
func (store *Store) Close() {
	store.snapshots.Close()
}
