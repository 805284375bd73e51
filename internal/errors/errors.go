// Package errors defines the pipeline's error taxonomy and its mapping to
// RFC 7807 problem responses at the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	// ErrTypeDownload covers network and HTTP failures, surfaced only after
	// every known URL pattern for a source has been tried.
	ErrTypeDownload ErrorType = "DOWNLOAD"
	// ErrTypeParse covers raw input no adapter rule matched.
	ErrTypeParse ErrorType = "PARSE"
	// ErrTypeValidation covers caller mistakes: unsupported year, malformed
	// district code. Fatal for the single call, never retried.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStorage covers cache read/write failures.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeNotFound covers requests for data that has not been fetched.
	ErrTypeNotFound ErrorType = "NOT_FOUND"
)

// AppError is the application error carrying its classification and
// source/year context for log and API rendering.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context value to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a classified application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDownloadError wraps a network/HTTP failure for one source.
func NewDownloadError(source string, year int, cause error) *AppError {
	return NewAppError(ErrTypeDownload, fmt.Sprintf("download failed for %s", source), cause).
		WithContext("source", source).
		WithContext("end_year", year)
}

// NewParseError wraps a parse failure with its source and year context.
func NewParseError(source string, year int, cause error) *AppError {
	return NewAppError(ErrTypeParse, fmt.Sprintf("no parse rule matched %s", source), cause).
		WithContext("source", source).
		WithContext("end_year", year)
}

// NewValidationError reports a rejected argument.
func NewValidationError(field, message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil).WithContext("field", field)
}

// NewStorageError wraps a cache store failure.
func NewStorageError(op string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, fmt.Sprintf("cache %s failed", op), cause).
		WithContext("operation", op)
}

// NewNotFoundError reports missing data for a key.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// TypeOf returns the classification of err, or "" when err carries none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsRecoverable reports whether a batch operation may downgrade err to a
// warning and continue with remaining years. Only download and parse
// failures qualify.
func IsRecoverable(err error) bool {
	t := TypeOf(err)
	return t == ErrTypeDownload || t == ErrTypeParse
}
