package certificate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/verify/{code}", h.Verify)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/", h.ListMine)
	})

	return r
}
