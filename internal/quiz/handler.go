package quiz

import (
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid quiz id")
		return
	}

	view, err := h.service.GetForTaking(r.Context(), quizID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to load quiz")
		return
	}

	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated for quiz submission")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid quiz id")
		return
	}

	var dto SubmitDTO
	if err := httpx.DecodeJSON(w, r, &dto); err != nil {
		httpx.Fail(w, r, err, "invalid request body")
		return
	}

	resp, err := h.service.Submit(r.Context(), userID, quizID, dto)
	if err != nil {
		httpx.Fail(w, r, err, "failed to submit quiz")
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid quiz id")
		return
	}

	attempts, err := h.service.ListAttempts(r.Context(), userID, quizID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to list attempts")
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}
