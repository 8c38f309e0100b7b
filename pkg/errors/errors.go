// Package errors provides structured error types for penman.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes mapped to HTTP status codes
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into four families:
//   - INVALID_*, MISSING_FIELD: validation failures (400)
//   - PROVIDER_ERROR, RATE_LIMITED, TIMEOUT: translation provider failures
//   - UNAUTHORIZED, DUPLICATE_USER: authentication failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "missing required field: %s", "text")
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "failed to store user %s", name)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeMissingField    Code = "MISSING_FIELD"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidFont     Code = "INVALID_FONT"

	// Translation provider errors
	ErrCodeProvider    Code = "PROVIDER_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized  Code = "UNAUTHORIZED"
	ErrCodeDuplicateUser Code = "DUPLICATE_USER"

	// Internal errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// A *ProviderError reports ErrCodeRateLimited, ErrCodeTimeout or
// ErrCodeProvider. Returns empty string for any other error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code()
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

// IsValidation reports whether err is one of the validation codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidLanguage,
		ErrCodeInvalidFormat, ErrCodeInvalidFont:
		return true
	}
	return false
}

// HTTPStatus maps an error to the HTTP status code the API answers with.
// Provider errors echo the upstream status, or 500 when none was received.
func HTTPStatus(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.HTTPStatus()
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidLanguage,
		ErrCodeInvalidFormat, ErrCodeInvalidFont:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ProviderError is returned when the upstream translation provider fails.
// StatusCode is the upstream HTTP status (0 when absent, e.g. on timeouts
// or provider-level failures reported inside a 200 body).
type ProviderError struct {
	StatusCode int    // Upstream status code, 0 if none
	Timeout    bool   // Request timed out before a response arrived
	Detail     string // Provider-supplied failure detail
	Err        error  // Underlying transport error (optional)
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	switch {
	case e.Timeout:
		return "provider timeout"
	case e.Detail != "" && e.StatusCode != 0:
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Detail)
	case e.Detail != "":
		return "provider error: " + e.Detail
	case e.Err != nil:
		return "provider error: " + e.Err.Error()
	default:
		return fmt.Sprintf("provider error (status %d)", e.StatusCode)
	}
}

// Unwrap returns the underlying transport error.
func (e *ProviderError) Unwrap() error { return e.Err }

// RateLimited reports whether the provider rejected the request with 429.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Transient reports whether the failure is worth retrying.
func (e *ProviderError) Transient() bool {
	return e.Timeout || e.RateLimited()
}

// Code returns the error code for this error type.
func (e *ProviderError) Code() Code {
	switch {
	case e.RateLimited():
		return ErrCodeRateLimited
	case e.Timeout:
		return ErrCodeTimeout
	default:
		return ErrCodeProvider
	}
}

// HTTPStatus returns the upstream status, or 500 if none was received.
func (e *ProviderError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

// AsProviderError extracts a *ProviderError from err's chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	ok := errors.As(err, &pe)
	return pe, ok
}
