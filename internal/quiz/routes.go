package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/{id}", h.GetQuiz)
	r.Post("/{id}/submit", h.Submit)
	r.Get("/{id}/attempts", h.ListAttempts)
	return r
}
