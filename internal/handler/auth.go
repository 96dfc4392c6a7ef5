package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tomasgx/authbox/internal/domain"
	"github.com/tomasgx/authbox/internal/service"
)

// sessionCookieName carries the signed session handle.
const sessionCookieName = "session_token"

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	sessions     *service.SessionManager
	validate     *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		sessions:     sessions,
		validate:     validator.New(),
		cookieSecure: cookieSecure,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin processes a JSON login request.
// POST /api/login
// Request:  {"username":"...","password":"..."}
// Response: {"success":true,"user":{...}} plus the session cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "missing_credentials", "Username and password are required.")
		return
	}

	client := domain.ClientInfo{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	user, cookieValue, err := h.auth.Login(r.Context(), req.Username, req.Password, client)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "missing_credentials", "Username and password are required.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Same body for unknown username and wrong password.
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		default:
			slog.Error("login", "error", err)
			writeError(w, http.StatusInternalServerError, "service_unavailable", "An unexpected error occurred. Please try again.")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(cookieValue, int(h.sessions.TTL()/time.Second)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}

// HandleProfile returns the authenticated user's record and login
// statistics. The RequireSession middleware has already vetted the
// session.
// GET /api/profile
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	user, stats, err := h.auth.ProfileByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		slog.Error("profile", "error", err)
		writeError(w, http.StatusInternalServerError, "service_unavailable", "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(user),
		"stats": toStatsDTO(stats),
	})
}

// HandleLogout destroys the session and clears the cookie. Always
// succeeds from the caller's perspective.
// POST /api/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			// The cookie is cleared regardless; the row expires on its
			// own if the delete did not land.
			slog.Error("logout", "error", err)
		}
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleAuthStatus reports whether the request carries a live session.
// GET /api/auth-status
func (h *AuthHandler) HandleAuthStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	userID, ok := h.auth.Status(r.Context(), cookie.Value)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"userId":        userID,
	})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// clientIP strips the port from RemoteAddr for the audit trail and the
// rate limiter key.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
