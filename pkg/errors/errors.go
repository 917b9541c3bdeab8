// Package errors provides structured error types for radioguide.
//
// Every failure that reaches the command line carries a machine-readable
// code so the CLI can print a short user-facing message while still keeping
// the underlying cause for --verbose output.
//
// # Error Codes
//
//   - FILE_NOT_FOUND: an input image, table or config file is absent
//   - PROCESSING_FAILED: any other failure while loading, laying out or saving
//   - INVALID_*: rejected user input (aspect ratio, table, config, options)
//   - FONT_UNAVAILABLE: no font in the fallback chain could be loaded
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAspect, "invalid aspect %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidAspect) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidTable  Code = "INVALID_TABLE"
	ErrCodeInvalidAspect Code = "INVALID_ASPECT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeFontUnavailable Code = "FONT_UNAVAILABLE"

	// Processing errors
	ErrCodeProcessing Code = "PROCESSING_FAILED"
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

// WrapIO wraps a file access error, classifying a missing file as
// FILE_NOT_FOUND and anything else as PROCESSING_FAILED.
func WrapIO(cause error, format string, args ...any) *Error {
	if errors.Is(cause, fs.ErrNotExist) {
		return Wrap(ErrCodeFileNotFound, cause, format, args...)
	}
	return Wrap(ErrCodeProcessing, cause, format, args...)
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
// Missing files get a hint about the working directory.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Code == ErrCodeFileNotFound {
		return fmt.Sprintf("could not find file: %s (make sure the files are in the current directory)", e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}
