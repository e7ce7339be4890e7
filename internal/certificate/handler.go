package certificate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/httpx"
)

type Handler struct {
	service CertificateService
}

func NewHandler(s CertificateService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated for certificate claim")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err, "invalid course id")
		return
	}

	resp, err := h.service.Issue(r.Context(), userID, courseID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to issue certificate")
		return
	}

	status := http.StatusOK
	if resp.Issued {
		status = http.StatusCreated
	}
	config.JSON(w, status, resp)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	certs, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		httpx.Fail(w, r, err, "failed to list certificates")
		return
	}

	config.JSON(w, http.StatusOK, certs)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Verify(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		http.Error(w, "invalid certificate", http.StatusNotFound)
		return
	}

	config.JSON(w, http.StatusOK, v)
}
