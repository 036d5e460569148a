// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package models

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindDataLoad
	KindLocationNotFound
	KindGeocode
	KindTimezoneLookup
	KindValidation
	KindRender
)

// String returns the stable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindDataLoad:
		return "DATA_LOAD_ERROR"
	case KindLocationNotFound:
		return "LOCATION_NOT_FOUND"
	case KindGeocode:
		return "GEOCODE_ERROR"
	case KindTimezoneLookup:
		return "TIMEZONE_LOOKUP_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindRender:
		return "RENDER_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is a classified error. Op names the operation that failed
// (e.g. "catalog.load"), Message is a human-readable description and
// Cause is the underlying error, if any.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrDataLoad         = &Error{Kind: KindDataLoad}
	ErrLocationNotFound = &Error{Kind: KindLocationNotFound}
	ErrGeocode          = &Error{Kind: KindGeocode}
	ErrTimezoneLookup   = &Error{Kind: KindTimezoneLookup}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrRender           = &Error{Kind: KindRender}
)

// NewError creates a classified error.
func NewError(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// Errorf creates a classified error with a formatted message. A %w verb in
// format is honoured: the wrapped error becomes the Cause.
func Errorf(kind Kind, op, format string, args ...interface{}) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Op: op, Message: wrapped.Error(), Cause: errors.Unwrap(wrapped)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Cause != nil && e.Message == "" {
		msg += ": " + e.Cause.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
