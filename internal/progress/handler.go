package progress

import (
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

type Handler struct {
	service ProgressService
}

func NewHandler(s ProgressService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	lessonID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid lesson id")
		return
	}

	snap, err := h.service.CompleteLesson(r.Context(), userID, lessonID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to complete lesson")
		return
	}

	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid course id")
		return
	}

	resp, err := h.service.GetCourseProgress(r.Context(), userID, courseID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to load progress")
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
