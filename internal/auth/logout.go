package auth

import (
	"net/http"

	"github.com/saulo-duarte/academy-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    "",
		Path:     "/",
		Domain:   config.Cfg.AuthCookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.Cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
