// Package apperr classifies business failures so controllers can map them
// to HTTP statuses without string matching.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidState Kind = "INVALID_STATE"
	KindInternal     Kind = "INTERNAL"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(k Kind, msg string) error { return &Error{Kind: k, Msg: msg} }

func Newf(k Kind, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func Validation(msg string) error   { return New(KindValidation, msg) }
func Unauthorized(msg string) error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) error    { return New(KindForbidden, msg) }
func NotFound(msg string) error     { return New(KindNotFound, msg) }
func Conflict(msg string) error     { return New(KindConflict, msg) }
func InvalidState(msg string) error { return New(KindInvalidState, msg) }

// KindOf extracts the kind, falling back to the gorm sentinels and then
// to KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	}
	return KindInternal
}

func Is(err error, k Kind) bool { return KindOf(err) == k }

// FromDB turns the gorm sentinels into typed errors carrying a readable
// message and passes everything else through.
func FromDB(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Msg: notFoundMsg, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Msg: "already exists", Err: err}
	}
	return err
}
