package errs

import (
	"sort"
	"strings"
)

// ValidationErrors maps a field path to its violation messages.
//
// Example:
//
//	{ "name": ["name is required"], "images[0].path": ["path is required"] }
type ValidationErrors map[string][]string

// Add appends message to the list for field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Fields returns the invalid field paths in sorted order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error makes a ValidationErrors usable as a plain error.
func (v ValidationErrors) Error() string {
	return "validation failed on: " + strings.Join(v.Fields(), ", ")
}

// HTTPError is the error type for API responses.
//
// It is serialized directly to JSON:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Errors: per-field validation messages, only for validation failures.
//
// The cause of an internal error is never serialized.
type HTTPError struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Status  int              `json:"status"`
	Errors  ValidationErrors `json:"errors,omitempty"`

	cause error
}

// Error returns the client message, followed by the cause when present so
// logs show the real failure.
func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError. Code and status are
// not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Cause returns the wrapped error, if any.
func (e *HTTPError) Cause() error {
	return e.cause
}

// IsValidation reports whether this is a validation failure.
func (e *HTTPError) IsValidation() bool {
	return len(e.Errors) > 0
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
