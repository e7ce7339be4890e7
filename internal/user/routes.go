package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes expects the caller to be set by auth.AuthMiddleware.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)

	return r
}
