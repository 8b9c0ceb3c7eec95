// Package errors provides structured error types for the roadmap engine and
// its host shell.
//
// The engine itself never fails on data: malformed input degrades to an
// absent value. Errors exist at the edges, where files are read, settings are
// loaded, caches and item stores are contacted, and requests arrive over HTTP.
// This package gives those edges:
//   - Machine-readable error codes shared by the CLI and the HTTP server
//   - User-friendly messages without the code prefix
//   - Wrapping that preserves the cause for errors.Is/As
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Resource not found
//   - SOURCE_* / TIMEOUT: Item store and cache connectivity
//   - INTERNAL_* / INVARIANT_*: Engine defects surfaced in debug runs
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSetting, "unknown group field: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidSetting) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceUnavailable, origErr, "open %s", dsn)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidSetting Code = "INVALID_SETTING"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidKey     Code = "INVALID_KEY"
	ErrCodeInvalidItem    Code = "INVALID_ITEM"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeFrameNotFound Code = "FRAME_NOT_FOUND"

	// Item store and cache errors
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	ErrCodeTimeout           Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeInvariant   Code = "INVARIANT_VIOLATED"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the caller's input rather
// than by the host or the engine. The HTTP server maps these to 4xx.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidSetting,
		ErrCodeInvalidPath, ErrCodeInvalidKey, ErrCodeInvalidItem:
		return true
	}
	return false
}

// IsNotFound reports whether err is any of the not-found codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeFrameNotFound:
		return true
	}
	return false
}
