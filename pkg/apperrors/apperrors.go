// Package apperrors defines the error taxonomy shared by services and the
// HTTP transport. Services return *Error values tagged with a Code; the
// transport maps codes to status lines and stable JSON error envelopes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category. Codes are part of the public API
// surface: they appear verbatim in JSON error envelopes.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeUnsupportedTLD     Code = "unsupported_tld"
	CodeRateLimited        Code = "rate_limited"
	CodeQuotaExceeded      Code = "quota_exceeded"
	CodeNotFound           Code = "not_found"
	CodeServiceUnavailable Code = "service_unavailable"
	CodeInternal           Code = "internal_error"
)

// Error carries a Code plus a human-readable message. The message is only
// surfaced to callers for client-error codes; everything else gets the bare
// code so internals never leak.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates err with a code and message while preserving the cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the Code from err, defaulting to CodeInternal for
// untagged errors so unexpected failures always map to a generic 500.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status line.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeUnsupportedTLD:
		return http.StatusBadRequest
	case CodeRateLimited, CodeQuotaExceeded:
		return http.StatusTooManyRequests
	case CodeNotFound:
		return http.StatusNotFound
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
