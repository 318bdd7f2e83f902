package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/auth"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	OK        bool      `json:"ok"`
	Role      auth.Role `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type AdminAuthHandler struct {
	accounts     []auth.Account
	sessions     *auth.SessionManager
	cookieSecure bool
	log          *zap.Logger
}

// NewAdminAuthHandler only allows login when a configured management account
// and the session secret are set.
func NewAdminAuthHandler(accounts []auth.Account, sessions *auth.SessionManager, cookieSecure bool, log *zap.Logger) *AdminAuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminAuthHandler{
		accounts:     accounts,
		sessions:     sessions,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

func (h *AdminAuthHandler) configured() bool {
	if h.sessions == nil || len(h.sessions.Secret) == 0 {
		return false
	}
	for _, a := range h.accounts {
		if a.Role == auth.RoleManagement && a.Configured() {
			return true
		}
	}
	return false
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		h.log.Warn("admin login: not configured")
		writeError(w, http.StatusServiceUnavailable, usecase.CodeNotConfigured, "admin auth not configured")
		return
	}

	var req AdminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid json")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "username and password are required")
		return
	}

	role, ok := auth.Authenticate(h.accounts, req.Username, req.Password)
	if !ok {
		h.log.Warn("admin login: invalid credentials", zap.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.sessions.Issue(req.Username, role)
	if err != nil {
		h.log.Error("admin login: token error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "", "token error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessions.TTL.Seconds()),
	})

	h.log.Info("admin login: ok", zap.String("username", req.Username), zap.String("role", string(role)))
	writeJSON(w, http.StatusOK, AdminLoginResponse{OK: true, Role: role, ExpiresAt: &expiresAt})
}

// Logout só apaga o cookie: o token continua válido até expirar.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, AdminLoginResponse{OK: true})
}
