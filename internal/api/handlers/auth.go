package handlers

import (
	"net/http"
	"time"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/middleware"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/auth"
)

type AuthHandler struct {
	tokens auth.TokenService
	expiry time.Duration
	secure bool
}

// NewAuthHandler builds the cookie issuer. secure marks the cookie Secure and
// SameSite=None for cross-site production frontends; otherwise it is Strict.
func NewAuthHandler(tokens auth.TokenService, expiry time.Duration, secure bool) *AuthHandler {
	if expiry <= 0 {
		expiry = auth.DefaultExpiry
	}
	return &AuthHandler{tokens: tokens, expiry: expiry, secure: secure}
}

// Token handles POST /jwt
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decode(w, r, &req) {
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		response.Error(w, apperr.Internal("failed to issue token", err))
		return
	}

	cookie := h.cookie(token)
	cookie.MaxAge = int(h.expiry.Seconds())
	http.SetCookie(w, cookie)

	response.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.cookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	response.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) cookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.secure {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
