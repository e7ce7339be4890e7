package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetOutline)
	r.Get("/{id}/reviews", h.ListReviews)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Post("/{id}/enroll", h.Enroll)
		r.Post("/{id}/reviews", h.SubmitReview)
	})

	return r
}
