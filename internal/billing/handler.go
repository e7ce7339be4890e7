package billing

import (
	"errors"
	"io"
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

const maxWebhookBytes = 65536

type Handler struct {
	service BillingService
}

func NewHandler(s BillingService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated for checkout")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CheckoutDTO
	if err := httpx.DecodeJSON(w, r, &dto); err != nil {
		httpx.Fail(w, r, err, "invalid request body")
		return
	}

	resp, err := h.service.Checkout(r.Context(), userID, dto)
	if err != nil {
		httpx.Fail(w, r, err, "failed to start checkout")
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		log.WithError(err).Warn("Failed to read webhook body")
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	err = h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if errors.Is(err, apperr.ErrValidation) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "webhook processing failed", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"received": true})
}
