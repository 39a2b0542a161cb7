// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears a status bar message. Generation matches the
// message it was scheduled for, so an older fade does not clear a newer
// message.
type logRecordFadeMsg struct {
	Generation int
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar before the help line returns.
const logRecordFadeDelay = 5 * time.Second

// messageSender is the part of *tea.Program the handler uses.
type messageSender interface {
	Send(tea.Msg)
}

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as status bar messages. Records below the
// configured level are dropped.
//
// Records arriving before SetProgram are dropped. Handlers derived via
// WithAttrs and WithGroup share the program pointer, so one SetProgram
// call covers all of them.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[messageSender]
	prefix  string      // Group path for attribute keys, "a.b." form.
	attrs   []slog.Attr // Already qualified with their group prefix.
}

// NewTUILogHandler creates a handler that delivers records at or above
// level to the program set with SetProgram.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[messageSender]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program)
}

func (handler *TUILogHandler) setSender(sender messageSender) {
	handler.program.Store(&sender)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.program.Load()
	if sender == nil {
		return nil
	}
	(*sender).Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

func (handler *TUILogHandler) summarize(record slog.Record) string {
	parts := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		parts = appendAttr(parts, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, handler.prefix, attr)
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// appendAttr formats attr as key=value, flattening groups into dotted
// keys and skipping empty attributes.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, member)
		}
		return parts
	}
	return append(parts, prefix+attr.Key+"="+attr.Value.String())
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, handler.attrs...)
	for _, attr := range attrs {
		attr.Key = handler.prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys with
// name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.prefix = handler.prefix + name + "."
	return &derived
}
