package course

import (
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

type Handler struct {
	service CourseService
}

func NewHandler(s CourseService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetOutline(w http.ResponseWriter, r *http.Request) {
	courseID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid course id")
		return
	}

	c, err := h.service.GetOutline(r.Context(), courseID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to load course")
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid course id")
		return
	}

	resp, err := h.service.EnrollFree(r.Context(), userID, courseID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to enroll")
		return
	}

	status := http.StatusCreated
	if resp.AlreadyEnrolled {
		status = http.StatusOK
	}
	config.JSON(w, status, resp)
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
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

	var dto ReviewDTO
	if err := httpx.DecodeJSON(w, r, &dto); err != nil {
		httpx.Fail(w, r, err, "invalid request body")
		return
	}

	review, err := h.service.SubmitReview(r.Context(), userID, courseID, dto)
	if err != nil {
		httpx.Fail(w, r, err, "failed to save review")
		return
	}

	config.JSON(w, http.StatusCreated, review)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	courseID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid course id")
		return
	}

	resp, err := h.service.ListReviews(r.Context(), courseID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to list reviews")
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
