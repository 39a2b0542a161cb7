// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/carousel/lib/testutil"
)

func TestWatchFileReloadsOnAtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := WriteFile(path, DummyGroups()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	source, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	store := NewStore(source, discardLogger())
	initial, err := store.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	stop, err := WatchFile(context.Background(), path, store, discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer stop()

	subscription := store.Subscribe()
	testutil.RequireReceive(t, subscription, time.Second, "initial snapshot")

	updated := append(DummyGroups(), ImageGroup{
		ImageRef: "extra",
		Items:    []Item{{Title: "List item title 4", Subtitle: "List item subtitle 4"}},
	})
	if err := WriteFile(path, updated); err != nil {
		t.Fatalf("WriteFile update: %v", err)
	}

	snapshot := testutil.RequireEventually(t, subscription, 5*time.Second, func(snapshot Snapshot) bool {
		return snapshot.Revision != initial.Revision
	}, "reloaded snapshot")
	if len(snapshot.Items) != 4 {
		t.Errorf("reloaded %d items, want 4", len(snapshot.Items))
	}
}

func TestWatchFileIgnoresBrokenWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := WriteFile(path, DummyGroups()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	source, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	store := NewStore(source, discardLogger())
	initial, err := store.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	stop, err := WatchFile(context.Background(), path, store, discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("{\"groups\": [oops"), 0o644); err != nil {
		t.Fatalf("write broken catalog: %v", err)
	}
	// Give the watcher time to notice and fail the reload.
	time.Sleep(300 * time.Millisecond)

	current := store.Snapshot()
	if current.Status != StatusReady || current.Revision != initial.Revision {
		t.Errorf("broken write replaced catalog: status %v revision %s", current.Status, current.Revision)
	}
}

func TestInotifyMatchesFileIgnoresOtherNames(t *testing.T) {
	if inotifyMatchesFile(nil, "catalog.json") {
		t.Error("empty buffer should not match")
	}
	if got := nullTerminated([]byte("catalog.json\x00\x00\x00")); got != "catalog.json" {
		t.Errorf("nullTerminated = %q", got)
	}
}
