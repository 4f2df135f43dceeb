// Package errors re-exports github.com/cockroachdb/errors and adds the small
// kind taxonomy the service boundary uses to pick a response status.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Kind classifies an error for the service boundary.
type Kind string

const (
	KindValidation Kind = "validation"
	KindExtraction Kind = "extraction"
	KindStore      Kind = "store"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

// WithKind tags err with kind. A nil err stays nil.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// Validation builds a validation error from a plain message.
func Validation(msg string) error {
	return WithKind(crdb.New(msg), KindValidation)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return WithKind(crdb.Newf(format, args...), KindValidation)
}

// KindOf returns the outermost kind attached to err, or KindInternal.
func KindOf(err error) Kind {
	var ke *kindError
	if crdb.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}
