package handler

import (
	"net/http"

	"github.com/tomasgx/authbox/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, sessions *service.SessionManager, loginLimiter *service.SlidingWindow, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, sessions, cookieSecure)

	mux.Handle("POST /api/login", LoginRateLimit(loginLimiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.Handle("GET /api/profile", RequireSession(sessions, http.HandlerFunc(authHandler.HandleProfile)))
	mux.HandleFunc("POST /api/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth-status", authHandler.HandleAuthStatus)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /", StaticHandler())
}
