package apperr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("order 42: %w", ErrInvalidState)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", ErrValidation, "validation"},
		{"not found", ErrNotFound, "not_found"},
		{"invalid state wrapped", wrapped, "invalid_state"},
		{"stock", ErrInsufficientStock, "insufficient_stock"},
		{"rider", ErrRiderUnavailable, "rider_unavailable"},
		{"attempt limit", ErrAttemptLimit, "attempt_limit"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"conflict", ErrConflict, "conflict"},
		{"unknown", fmt.Errorf("boom"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"not found", fmt.Errorf("rider: %w", ErrNotFound), http.StatusNotFound},
		{"invalid state", ErrInvalidState, http.StatusUnprocessableEntity},
		{"stock", ErrInsufficientStock, http.StatusUnprocessableEntity},
		{"rider unavailable", ErrRiderUnavailable, http.StatusUnprocessableEntity},
		{"attempt limit", ErrAttemptLimit, http.StatusUnprocessableEntity},
		{"unauthorized", ErrUnauthorized, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusConflict},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
