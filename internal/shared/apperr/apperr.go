// Package apperr defines the request-terminal error kinds shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindAuthorization Kind = "authorization"
	KindPrecondition  Kind = "precondition"
	KindNotFound      Kind = "not_found"
	KindValidation    Kind = "validation"
)

// Error is a classified error. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrPrecondition  = &Error{Kind: KindPrecondition}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrValidation    = &Error{Kind: KindValidation}
)

func Authorization(msg string) error { return &Error{Kind: KindAuthorization, Message: msg} }
func Precondition(msg string) error  { return &Error{Kind: KindPrecondition, Message: msg} }
func NotFound(msg string) error      { return &Error{Kind: KindNotFound, Message: msg} }
func Validation(msg string) error    { return &Error{Kind: KindValidation, Message: msg} }

// Wrap classifies cause under kind with a caller-facing message.
func Wrap(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// As extracts the classified error, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
