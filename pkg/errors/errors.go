package apperrors

import (
	"errors"
	"net/http"
)

// Common errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrRateLimited      = errors.New("rate limited")
	ErrModerationFailed = errors.New("moderation failed")
	ErrInternal         = errors.New("internal error")
)

// HTTPStatus maps a service error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrModerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code maps a service error to a machine-readable response code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_REQUEST"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrModerationFailed):
		return "MODERATION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
