package response

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across the service and repository layers. Handlers
// translate them into HTTP statuses with StatusFor; anything unrecognized is
// a 500.
var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrUpstream           = errors.New("upstream unavailable")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// StatusFor maps an error chain onto the HTTP status the API contract
// promises. Duplicate email maps to 400, matching the signup contract.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidResetToken):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
