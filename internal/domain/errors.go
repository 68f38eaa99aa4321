package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so callers can branch on the class of
// error without matching message text.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindInvalidOperation ErrorKind = "invalid_operation"
	KindInfrastructure   ErrorKind = "infrastructure"
)

// Error is the failure type produced by the rental core. Fields carries
// field-level messages accompanying validation failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or missing input.
func NewValidationError(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFoundf reports that a referenced booking number does not exist.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf reports an identifier or version collision.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationf reports a business-rule violation.
func InvalidOperationf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// InfrastructureError wraps a backend failure that is fatal to the
// operation, such as an unreachable store.
func InfrastructureError(message string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to infrastructure for errors
// that did not originate in the core.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

func IsValidation(err error) bool       { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool         { return KindOf(err) == KindConflict }
func IsInvalidOperation(err error) bool { return KindOf(err) == KindInvalidOperation }

// FieldsOf returns the field-level validation messages attached to err, if
// any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
