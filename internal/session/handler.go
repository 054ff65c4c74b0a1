// internal/session/handler.go
package session

import (
	"net/http"
	"time"

	"portfolio-backend/internal/common/config"
	apperrors "portfolio-backend/internal/common/errors"
	apphttp "portfolio-backend/internal/common/http"
	"portfolio-backend/internal/common/logger"

	"github.com/google/uuid"
)

const tokenPrefix = "user-session-"

// Anonymous identifies visitors without a session cookie.
const Anonymous = "Anonymous"

type Handler struct {
	cookie config.CookieConfig
	auth   *Authenticator
	store  Store
	logger logger.Logger
}

func NewHandler(cookie config.CookieConfig, auth *Authenticator, store Store, log logger.Logger) *Handler {
	return &Handler{
		cookie: cookie,
		auth:   auth,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	if !h.auth.Verify(req.Email, req.Password) {
		h.logger.Warn("login rejected", map[string]interface{}{"email": req.Email})
		apphttp.WriteJSON(w, http.StatusUnauthorized, DetailResponse{Detail: "Invalid credentials"})
		return
	}

	token := tokenPrefix + uuid.NewString()
	ttl := time.Duration(h.cookie.MaxAge) * time.Second
	if err := h.store.Create(r.Context(), token, req.Email, ttl); err != nil {
		apphttp.WriteError(w, h.logger, apperrors.NewSessionStoreFailedError("create", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookie.MaxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("login succeeded", map[string]interface{}{"email": req.Email})
	apphttp.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Login successful"})
}

// CheckSession handles GET /check-session.
func (h *Handler) CheckSession(w http.ResponseWriter, r *http.Request) {
	token := Token(r, h.cookie.Name)
	if token == "" {
		apphttp.WriteJSON(w, http.StatusOK, CheckResponse{LoggedIn: false})
		return
	}

	ok, err := h.store.Exists(r.Context(), token)
	if err != nil {
		apphttp.WriteError(w, h.logger, apperrors.NewSessionStoreFailedError("exists", err))
		return
	}
	if !ok {
		apphttp.WriteJSON(w, http.StatusOK, CheckResponse{LoggedIn: false})
		return
	}
	apphttp.WriteJSON(w, http.StatusOK, CheckResponse{LoggedIn: true, Token: token})
}

// Logout handles POST /logout. It always clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := Token(r, h.cookie.Name); token != "" {
		if err := h.store.Delete(r.Context(), token); err != nil {
			h.logger.Warn("failed to delete session", map[string]interface{}{"error": err})
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	apphttp.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Token returns the session cookie value, or "" when absent.
func Token(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// UserIdentifier is the cookie value, or Anonymous.
func UserIdentifier(r *http.Request, cookieName string) string {
	if token := Token(r, cookieName); token != "" {
		return token
	}
	return Anonymous
}
