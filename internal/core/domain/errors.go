package domain

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by repositories when no row matches. Adapters map
// their driver's no-rows sentinel to this one so services stay driver-agnostic.
var ErrNotFound = errors.New("record not found")

// AppError carries the HTTP status a failure should surface with. Handlers
// unwrap it at the boundary and render a {"message": ...} body.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, err.Error())
}
