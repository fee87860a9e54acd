package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/tutorium/tutor-api/internal/api/shared"
	"github.com/tutorium/tutor-api/internal/domain"
	"github.com/tutorium/tutor-api/internal/generation"
	"github.com/tutorium/tutor-api/internal/service/auth"
	"github.com/tutorium/tutor-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case generation.IsRateLimited(err):
		return http.StatusTooManyRequests

	case errors.Is(err, generation.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// error. Internal details never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case generation.IsRateLimited(err):
		return "Too many requests, please try again later"

	case errors.Is(err, generation.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation):
		return err.Error() // validation messages are written for users

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrEmailExists):
		return "An account with this email already exists"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError maps the error to a status code and safe message
// and writes the response. Rate-limit denials additionally carry a
// Retry-After header with the wait in whole seconds, rounded up.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var rle *generation.RateLimitedError
	if errors.As(err, &rle) {
		seconds := int(math.Ceil(rle.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
