package httputil

import (
	"net/http"

	"github.com/lanternworks/api-template/internal/models"
)

// Error is an application-raised HTTP error carrying the status and stable
// code that end up in the response envelope.
type Error struct {
	Status  int
	Code    models.ErrorCode
	Message string
	Detail  any
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error with the code derived from the status.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Code: models.CodeFromStatus(status), Message: message}
}

// WithDetail attaches a detail payload to the error.
func (e *Error) WithDetail(detail any) *Error {
	e.Detail = detail
	return e
}

func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

func Validation(message string, detail any) *Error {
	return NewError(http.StatusUnprocessableEntity, message).WithDetail(detail)
}

func Unavailable(message string) *Error {
	return NewError(http.StatusServiceUnavailable, message)
}
