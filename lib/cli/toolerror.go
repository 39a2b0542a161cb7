// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that scripts can react to
// the exit status without parsing error text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flags, bad config values, unsupported file extensions.
	// The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist,
	// such as a missing config file.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryUnavailable indicates the catalog could not be loaded:
	// an unreachable database, an unreadable catalog file. Retrying
	// later may succeed.
	CategoryUnavailable ErrorCategory = "unavailable"

	// CategoryInternal indicates an unexpected error. The caller should
	// report it rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// Exit codes by category. Uncategorized errors exit with
// ExitCodeInternal.
const (
	ExitCodeInternal    = 1
	ExitCodeValidation  = 2
	ExitCodeNotFound    = 3
	ExitCodeUnavailable = 4
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is optional guidance appended to the message after a
	// blank line.
	Hint string
}

// Error returns the underlying message, followed by the hint if one
// is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode returns the process exit code for the error's category.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return ExitCodeValidation
	case CategoryNotFound:
		return ExitCodeNotFound
	case CategoryUnavailable:
		return ExitCodeUnavailable
	default:
		return ExitCodeInternal
	}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates an unavailable error: the catalog could not be loaded.
func Unavailable(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryUnavailable, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or bug.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// ExitCode returns the exit status for err: 0 for nil, the code of the
// first error in the chain implementing ExitCode() int, and
// ExitCodeInternal otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitCodeInternal
}
