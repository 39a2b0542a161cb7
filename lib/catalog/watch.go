// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"encoding/binary"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// watchDebounce is how long the watcher waits after a change event
// before reloading, so that a burst of writes produces one reload.
const watchDebounce = 50 * time.Millisecond

// WatchFile starts an inotify watcher that calls [Store.Refresh]
// whenever the catalog file at path is rewritten. The returned cleanup
// function stops the watcher; it is safe to call more than once.
//
// The parent directory is watched rather than the file itself, for
// IN_CLOSE_WRITE and IN_MOVED_TO on the target name. Tools that save
// by writing a temporary file and renaming it replace the inode, and
// a watch on the old inode would miss the replacement.
//
// Refresh keeps the last good catalog when a reload fails, and skips
// republishing when the reloaded catalog has the same revision, so
// touching the file without changing it does not disturb subscribers.
func WatchFile(ctx context.Context, path string, store *Store, logger *slog.Logger) (func(), error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	directory := filepath.Dir(absolutePath)
	filename := filepath.Base(absolutePath)

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if _, err := unix.InotifyAddWatch(fd, directory, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, err
	}

	watchContext, cancel := context.WithCancel(ctx)
	go watchLoop(watchContext, fd, filename, store, logger.With("path", absolutePath))

	return cancel, nil
}

// watchLoop polls the inotify fd until ctx is cancelled. poll(2) uses
// a 100ms timeout so cancellation is noticed promptly.
func watchLoop(ctx context.Context, fd int, filename string, store *Store, logger *slog.Logger) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// The screen keeps the catalog it has; it just stops
			// following the file.
			logger.Error("catalog watcher stopped", "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			logger.Error("catalog watcher stopped", "error", err)
			return
		}
		if !inotifyMatchesFile(buffer[:bytesRead], filename) {
			continue
		}

		time.Sleep(watchDebounce)
		drainInotifyEvents(fd, buffer)

		// Refresh logs failures itself.
		if _, err := store.Refresh(ctx); err == nil {
			logger.Debug("catalog file reloaded")
		}
	}
}

// inotifyMatchesFile reports whether any event in buffer names
// targetFilename. Event layout, from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func inotifyMatchesFile(buffer []byte, targetFilename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := nullTerminated(buffer[offset+unix.SizeofInotifyEvent : offset+eventSize])
			if name == targetFilename {
				return true
			}
		}
		offset += eventSize
	}
	return false
}

// nullTerminated returns data up to its first null byte.
func nullTerminated(data []byte) string {
	for index, b := range data {
		if b == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

// drainInotifyEvents discards pending events after the debounce sleep.
func drainInotifyEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
