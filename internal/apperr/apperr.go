package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the distinct failure conditions surfaced to callers.
// Services wrap these with fmt.Errorf("...: %w", ...) to add detail.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrRiderUnavailable  = errors.New("rider unavailable")
	ErrAttemptLimit      = errors.New("delivery attempt limit reached")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
)

// Kind returns a stable machine-readable label for an error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrInvalidState):
		return "invalid_state"

	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"

	case errors.Is(err, ErrRiderUnavailable):
		return "rider_unavailable"

	case errors.Is(err, ErrAttemptLimit):
		return "attempt_limit"

	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"

	case errors.Is(err, ErrConflict):
		return "conflict"

	default:
		return "internal"
	}
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrRiderUnavailable),
		errors.Is(err, ErrAttemptLimit):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, ErrConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
