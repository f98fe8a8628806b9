package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable category of a domain error.
type Kind string

const (
	KindValidation             Kind = "VALIDATION"
	KindNotFound               Kind = "NOT_FOUND"
	KindInvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	KindLimitExceeded          Kind = "LIMIT_EXCEEDED"
	KindDuplicateName          Kind = "DUPLICATE_NAME"
	KindConflict               Kind = "CONFLICT"
)

// ErrConcurrentUpdate is returned by repositories when a versioned row was
// modified by someone else between read and write.
var ErrConcurrentUpdate = &Error{
	Kind:    KindConflict,
	Message: "the resource was modified concurrently, reload and retry",
}

type Error struct {
	Kind    Kind
	Message string
	// Current and Limit are set for KindLimitExceeded only.
	Current int
	Limit   int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind and message, so errors.Is works with the
// package level sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return newError(KindInvalidStateTransition, format, args...)
}

func DuplicateName(format string, args ...any) *Error {
	return newError(KindDuplicateName, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func LimitExceeded(current, limit int, message string) *Error {
	return &Error{
		Kind:    KindLimitExceeded,
		Message: message,
		Current: current,
		Limit:   limit,
	}
}

// Wrap attaches a cause to a domain error, keeping its kind.
func (e *Error) Wrap(err error) *Error {
	wrapped := *e
	wrapped.Err = err
	return &wrapped
}

// As returns the first *Error in the chain of err.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of the first domain error in the chain, or an empty Kind.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
