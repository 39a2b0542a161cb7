// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

// Source produces catalog groups. Fetch is called once per
// [Store.Initialize] or [Store.Refresh]; implementations that do I/O
// must honor ctx cancellation.
type Source interface {
	// Fetch returns the catalog groups in display order.
	Fetch(ctx context.Context) ([]ImageGroup, error)

	// Name identifies the source in logs and error messages.
	Name() string
}

// StaticSource serves a fixed set of groups. It never fails.
type StaticSource struct {
	groups []ImageGroup
}

// NewStaticSource returns a source serving groups. The slice is kept,
// not copied; callers must not modify it afterwards.
func NewStaticSource(groups []ImageGroup) *StaticSource {
	return &StaticSource{groups: groups}
}

// DefaultSource returns a source serving [DummyGroups].
func DefaultSource() *StaticSource {
	return NewStaticSource(DummyGroups())
}

// Fetch returns the fixed groups.
func (source *StaticSource) Fetch(context.Context) ([]ImageGroup, error) {
	return source.groups, nil
}

// Name returns "static".
func (source *StaticSource) Name() string { return "static" }

// SourceFunc adapts a function to the Source interface.
type SourceFunc struct {
	Label string
	Func  func(ctx context.Context) ([]ImageGroup, error)
}

// Fetch calls the wrapped function.
func (source SourceFunc) Fetch(ctx context.Context) ([]ImageGroup, error) {
	return source.Func(ctx)
}

// Name returns the label.
func (source SourceFunc) Name() string { return source.Label }
