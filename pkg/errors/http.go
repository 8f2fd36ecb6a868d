package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError is an error that carries the HTTP status to answer with.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError creates an HTTPError for status code with a client-facing message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// AsHTTPError unwraps err into an HTTPError when it holds one.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "Bad request")
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	ErrForbidden           = NewHTTPError(http.StatusForbidden, "Forbidden")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "Not found")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "Too many requests")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "Internal server error")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "Service unavailable")
)
