package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
)

const maxBodyBytes = 1 << 20

func URLParamUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s required: %w", key, apperr.ErrValidation)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", key, apperr.ErrValidation)
	}
	return id, nil
}

func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", apperr.ErrValidation)
	}
	return nil
}

// Fail writes err with the status from apperr.Status. Server errors are
// logged with msg and answered with msg only.
func Fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		config.WithContext(r.Context()).WithError(err).Error(msg)
	}
	http.Error(w, apperr.Message(err, msg), status)
}
