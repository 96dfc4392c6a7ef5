package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomasgx/authbox/internal/config"
	"github.com/tomasgx/authbox/internal/handler"
	"github.com/tomasgx/authbox/internal/repository/sqlite"
	"github.com/tomasgx/authbox/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	sessions := service.NewSessionManager(db.Sessions(), cfg.SessionSecret, cfg.SessionTTL)
	auth := service.NewAuthService(db.Users(), db.LoginAudit(), sessions, hasher)
	loginLimiter := service.NewSlidingWindow(cfg.LoginRateMax, cfg.LoginRateWindow)

	if cfg.SeedUsers {
		if err := auth.SeedDefaultUsers(context.Background()); err != nil {
			slog.Error("seed default users", "error", err)
			os.Exit(1)
		}
		slog.Info("default users ready")
	}

	// Storage hygiene only; expired sessions are already rejected on
	// lookup.
	if removed, err := db.Sessions().DeleteExpired(context.Background(), time.Now()); err != nil {
		slog.Warn("sweep expired sessions", "error", err)
	} else if removed > 0 {
		slog.Info("swept expired sessions", "count", removed)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, sessions, loginLimiter, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.RequestLogger(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
