package errs

import (
	"net/http"
)

const (
	// MessageValidationFailed is returned with every validation failure.
	MessageValidationFailed = "Validation fails"

	// MessageInternal is the only detail a client gets about a 500.
	MessageInternal = "Internal server error"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" code when not nil; fields
// carries per-field messages and may be nil.
func NewBadRequestError(message string, code *string, fields ValidationErrors) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fields,
	}
}

// NewValidationError creates the 400 response for a submission that failed
// its schema.
func NewValidationError(fields ValidationErrors) *HTTPError {
	return NewBadRequestError(MessageValidationFailed, nil, fields)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalError creates a 500 HTTPError. cause is kept for logging and
// error unwrapping; the client only sees MessageInternal.
func NewInternalError(cause error) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MessageInternal,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewStatusError creates an HTTPError for any other status, deriving the
// code from the status text.
func NewStatusError(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}
