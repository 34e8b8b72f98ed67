package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// StoreError reports an I/O failure of a storage collaborator.
// errors.Cause stops at a StoreError: it only implements Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (err *StoreError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *StoreError) Unwrap() error { return err.Err }

// IntegrityError reports data that violates an upstream invariant (eg. a classroom without a course rep).
type IntegrityError struct {
	msg string
}

func NewIntegrityError(msg string) error {
	return &IntegrityError{msg: msg}
}

func (err *IntegrityError) Error() string {
	return err.msg
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
