// Package apierrors defines the API-level error taxonomy. Each error carries
// the HTTP status it surfaces as; handlers map anything else to 500 without
// leaking internal detail.
package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error with a fixed external representation.
type APIError struct {
	HTTPCode int
	Message  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// NewErrValidation creates a 400 error for malformed or missing input.
func NewErrValidation(msg string) *APIError {
	return &APIError{HTTPCode: http.StatusBadRequest, Message: msg}
}

// NewErrMissingAuthorizationToken creates a 401 error for requests without
// credential material.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{HTTPCode: http.StatusUnauthorized, Message: "authorization token is missing"}
}

// NewErrInvalidAuthorizationToken creates a 401 error for unresolvable tokens.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{HTTPCode: http.StatusUnauthorized, Message: "authorization token is invalid"}
}

// NewErrInvalidCredentials creates a 401 error for failed logins. The same
// error is used for unknown emails and wrong passwords so the response does
// not reveal which check failed.
func NewErrInvalidCredentials() *APIError {
	return &APIError{HTTPCode: http.StatusUnauthorized, Message: "invalid email or password"}
}

// NewErrNoteNotFound creates a 404 error for missing or foreign notes.
func NewErrNoteNotFound() *APIError {
	return &APIError{HTTPCode: http.StatusNotFound, Message: "note not found"}
}

// NewErrEmailIsTaken creates a 409 error for duplicate registration.
func NewErrEmailIsTaken(email string) *APIError {
	return &APIError{HTTPCode: http.StatusConflict, Message: fmt.Sprintf("email %s is already taken", email)}
}

// NewErrOCRFailed creates a 502 error for a terminal upstream failure.
func NewErrOCRFailed() *APIError {
	return &APIError{HTTPCode: http.StatusBadGateway, Message: "text recognition service returned an error"}
}

// NewErrOCRBusy creates a 503 error for rate-limiting that survived all
// retry attempts.
func NewErrOCRBusy() *APIError {
	return &APIError{HTTPCode: http.StatusServiceUnavailable, Message: "text recognition service is busy, try again later"}
}

// NewErrOCRUnavailable creates a 503 error for transport failures that
// survived all retry attempts.
func NewErrOCRUnavailable() *APIError {
	return &APIError{HTTPCode: http.StatusServiceUnavailable, Message: "text recognition service is unavailable"}
}
