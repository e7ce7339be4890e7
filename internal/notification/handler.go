package notification

import (
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

type Handler struct {
	service NotificationService
}

func NewHandler(s NotificationService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to list notifications")
		return
	}

	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid notification id")
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, id); err != nil {
		httpx.Fail(w, r, err, "failed to update notification")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
