// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broadcast

import "sync"

// Latest is a latest-value broadcaster. The zero value is ready to use.
// Safe for concurrent use.
type Latest[T any] struct {
	mutex       sync.Mutex
	value       T
	published   bool
	closed      bool
	subscribers []chan T
}

// Publish stores value as the current value and delivers it to every
// subscriber, replacing any unread older value. Publish never blocks
// on a slow subscriber. Publishing after Close is a no-op.
func (latest *Latest[T]) Publish(value T) {
	latest.mutex.Lock()
	defer latest.mutex.Unlock()

	if latest.closed {
		return
	}
	latest.value = value
	latest.published = true
	for _, subscriber := range latest.subscribers {
		offer(subscriber, value)
	}
}

// offer places value in a capacity-1 channel. Delivery happens under
// the broadcaster mutex, so Publish is the only sender and the second
// send cannot find the slot refilled.
func offer[T any](channel chan T, value T) {
	select {
	case channel <- value:
		return
	default:
	}
	select {
	case <-channel:
	default:
	}
	select {
	case channel <- value:
	default:
	}
}

// Value returns the current value and whether anything has been
// published yet.
func (latest *Latest[T]) Value() (T, bool) {
	latest.mutex.Lock()
	defer latest.mutex.Unlock()
	return latest.value, latest.published
}

// Subscribe returns a channel that receives published values. If a
// value has already been published, it is delivered immediately. The
// channel is closed by Unsubscribe or Close.
func (latest *Latest[T]) Subscribe() <-chan T {
	latest.mutex.Lock()
	defer latest.mutex.Unlock()

	channel := make(chan T, 1)
	if latest.closed {
		close(channel)
		return channel
	}
	if latest.published {
		channel <- latest.value
	}
	latest.subscribers = append(latest.subscribers, channel)
	return channel
}

// Unsubscribe removes and closes a channel returned by Subscribe.
// Unknown channels are ignored.
func (latest *Latest[T]) Unsubscribe(subscription <-chan T) {
	latest.mutex.Lock()
	defer latest.mutex.Unlock()

	for index, subscriber := range latest.subscribers {
		if (<-chan T)(subscriber) == subscription {
			latest.subscribers = append(latest.subscribers[:index], latest.subscribers[index+1:]...)
			close(subscriber)
			return
		}
	}
}

// Close closes every subscriber channel. Later Subscribe calls return
// an already-closed channel.
func (latest *Latest[T]) Close() {
	latest.mutex.Lock()
	defer latest.mutex.Unlock()

	if latest.closed {
		return
	}
	latest.closed = true
	for _, subscriber := range latest.subscribers {
		close(subscriber)
	}
	latest.subscribers = nil
}
