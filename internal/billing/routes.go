package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
)

func CheckoutRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)
	r.Post("/", h.Checkout)

	return r
}

func WebhookRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/stripe", h.StripeWebhook)

	return r
}
