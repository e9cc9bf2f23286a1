package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain failure carrying the HTTP status the boundary
// should map it to. Internal storage errors are never wrapped into the
// message; they are replaced by Internal().
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation reports malformed input (length/required-field violations).
func Validation(message string) *Error {
	return newError(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Duplicate reports a unique-constraint collision.
func Duplicate(message string) *Error {
	return newError(http.StatusBadRequest, "DUPLICATE", message)
}

// NotFound reports an absent entity.
func NotFound(what string) *Error {
	return newError(http.StatusNotFound, "NOT_FOUND", what+" not found")
}

// InvalidID reports a structurally malformed identifier.
func InvalidID(what string) *Error {
	return newError(http.StatusBadRequest, "INVALID_ID", "Invalid "+what+" ID")
}

// NotAMember reports a membership-precondition violation.
func NotAMember(message string) *Error {
	return newError(http.StatusForbidden, "NOT_A_MEMBER", message)
}

// AlreadyMember reports a join attempt by an existing member.
func AlreadyMember() *Error {
	return newError(http.StatusBadRequest, "ALREADY_MEMBER", "You are already a member of this channel")
}

// NotAuthorized reports a creator-only action attempted by a non-creator.
func NotAuthorized(message string) *Error {
	return newError(http.StatusForbidden, "NOT_AUTHORIZED", message)
}

// Authentication reports a missing/invalid/expired token or bad credentials.
func Authentication(message string) *Error {
	return newError(http.StatusUnauthorized, "AUTHENTICATION_ERROR", message)
}

// Internal hides the underlying cause behind a generic server error.
func Internal() *Error {
	return newError(http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
}

// From extracts the typed error, or falls back to Internal for anything
// the core did not classify.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal()
}
