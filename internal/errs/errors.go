// Package errs defines the error taxonomy shared by the API server and
// the delivery worker.
package errs

import (
	"errors"
	"fmt"
)

// Error is a categorized error. Code tells callers how to react:
// validation errors go back to the client, transport and device errors
// are folded into worker state transitions, store errors become 500s.
type Error struct {
	// Code is a machine-readable error code.
	Code string

	// Message is a human-readable error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error codes.
const (
	// CodeValidation indicates bad client input. Never retried.
	CodeValidation = "VALIDATION_ERROR"

	// CodeTransport indicates the API or network was unreachable.
	// Retried by the worker loop, never by the API layer.
	CodeTransport = "TRANSPORT_ERROR"

	// CodeDevice indicates the output hardware is unavailable or failed.
	CodeDevice = "DEVICE_ERROR"

	// CodeStore indicates a persistence failure.
	CodeStore = "STORE_ERROR"

	// CodeNoData indicates a query returned no results. Not an error
	// condition in all cases.
	CodeNoData = "NO_DATA"
)

// ErrNoData is returned when a query finds nothing, e.g. when no
// pending message exists.
var ErrNoData = &Error{
	Code:    CodeNoData,
	Message: "no data found",
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error wrapping an underlying error.
func Wrap(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

// IsNoData reports whether err is ErrNoData or carries its code.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData) || HasCode(err, CodeNoData)
}
