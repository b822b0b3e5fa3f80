// Package apperr defines the error kinds surfaced by the blog's persistence
// layer and the HTTP status each one maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error sentinels
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error carries an error kind together with the HTTP status it maps to
type Error struct {
	StatusCode int
	err        error
	Field      string // Field that failed validation, if any
	Cause      error  // Underlying storage error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.err.Error(), e.Cause)
	}
	return e.err.Error()
}

// Unwrap exposes the wrapped sentinel, so errors.Is(err, ErrNotFound) works
func (e *Error) Unwrap() error {
	return e.err
}

// NotFound reports that the entity with the given id does not exist
func NotFound(entity string, id uint) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %d %w", entity, id, ErrNotFound),
	}
}

// Validation reports that a submitted field is missing or malformed
func Validation(field, message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %s %s", ErrValidation, field, message),
		Field:      field,
	}
}

// Conflict reports a uniqueness collision
func Conflict(entity, message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w: %s", entity, ErrConflict, message),
	}
}

// Internal wraps an unexpected failure during operation on entity
func Internal(operation, entity string, cause error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("failed to %s %s: %w", operation, entity, ErrInternal),
		Cause:      cause,
	}
}

// FromDB translates a gorm error into an application error.
// Errors that already carry a kind are returned unchanged.
func FromDB(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Cause:      err,
		}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s %w", entity, ErrConflict),
			Cause:      err,
		}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("%w: invalid reference in %s", ErrValidation, entity),
			Cause:      err,
		}
	}
	return Internal(operation, entity, err)
}

// StatusCode returns the HTTP status for err, 500 for errors without a kind
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
