package entity

import (
	"errors"
	"net/http"
)

// Error is an application error with an HTTP status class. Validation
// failures map to 400, missing references to 404, duplicates to 409.
// Anything that is not an *Error surfaces as a 500.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewValidationError(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Code: http.StatusNotFound, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Code: http.StatusConflict, Message: msg}
}

func NewUnauthorizedError(msg string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: msg}
}

// ErrorCode extracts the HTTP status for err, defaulting to 500.
func ErrorCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
