// Package cuperr defines the typed error kinds surfaced by the core.
package cuperr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure.
type Kind string

const (
	PlatformUnsupported Kind = "platform-unsupported"
	PlatformPermission  Kind = "platform-permission"
	PlatformUnavailable Kind = "platform-unavailable"
	PlatformTimeout     Kind = "platform-timeout"
	PlatformFailure     Kind = "platform-failure"
	UnknownAction       Kind = "unknown-action"
	UnknownElement      Kind = "unknown-element"
	InvalidParams       Kind = "invalid-params"
	StaleSnapshot       Kind = "stale-snapshot"
)

// Error is a failure tagged with its kind. The message is human-readable
// and may carry native error text for platform-failure.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// KindOf returns the kind of err if it is (or wraps) an Error, else "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is lets errors.Is match against a bare kind via KindError.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// KindError returns a sentinel usable with errors.Is for kind matching.
func KindError(kind Kind) error { return &Error{Kind: kind} }
