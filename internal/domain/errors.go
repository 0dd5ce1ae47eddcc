package domain

import (
	"errors"
	"net/http"
)

// Error taxonomy shared by every layer. Callers wrap these with
// fmt.Errorf("%w: ...") and the HTTP layer maps them to status codes.
var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("insufficient role")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrStorage         = errors.New("storage failure")
)

// StatusCode maps an error from the taxonomy to its HTTP status.
// Anything unknown is an internal error.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
