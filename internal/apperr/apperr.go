// Package apperr holds the error taxonomy shared by every feature package.
// Feature packages wrap these values with %w so handlers can map any
// returned error to a status code without knowing the feature.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns err's text for client errors and fallback for everything
// else, so provider failures never leak to the caller.
func Message(err error, fallback string) string {
	if Status(err) >= http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
