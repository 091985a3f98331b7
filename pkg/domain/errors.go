package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrValidation is returned when input validation fails before any backend call.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when the identity provider rejects the
	// credentials or no session is present.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrStore is returned when a write, read or delete failed at the backend.
	ErrStore = errors.New("store error")
	// ErrNotFound is returned when a read succeeded but nothing lives at the key
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
)

// Kind tags an error with its place in the taxonomy so callers can branch.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindStore      Kind = "store"
	KindNotFound   Kind = "not_found"
)

var kindSentinels = map[Kind]error{
	KindValidation: ErrValidation,
	KindAuth:       ErrUnauthorized,
	KindStore:      ErrStore,
	KindNotFound:   ErrNotFound,
}

// Error carries a taxonomy kind and the backend message verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidationError returns a validation error with a formatted message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewAuthError tags err as an authentication failure keeping its message.
func NewAuthError(err error) *Error {
	return wrap(KindAuth, err)
}

// NewStoreError tags err as a backend failure keeping its message.
func NewStoreError(err error) *Error {
	return wrap(KindStore, err)
}

// NewNotFoundError reports that nothing exists under what.
func NewNotFoundError(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func wrap(kind Kind, err error) *Error {
	if err == nil {
		return &Error{Kind: kind}
	}
	var de *Error
	if errors.As(err, &de) && de.Kind == kind {
		return de
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// KindOf reports the taxonomy kind of err, or "" when untagged.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}
