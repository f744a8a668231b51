package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "maonav/internal/adapter/http"
	"maonav/internal/app"
	"maonav/internal/config"
	"maonav/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	authSvc := app.NewAuthService(backend.Repos, backend.Sessions, cfg.JWTSecret,
		app.WithLegacyPolicy(cfg.Policy()),
		app.WithLogger(logger),
	)

	if cfg.AdminUsername != "" {
		err := authSvc.CreateInitialAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		switch {
		case err == nil:
			logger.Info("initial admin created", "username", cfg.AdminUsername)
		case errors.Is(err, app.ErrAdminExists):
		default:
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	if cfg.SessionPurgeInterval > 0 {
		go purgeSessions(ctx, authSvc, cfg.SessionPurgeInterval, logger)
	}

	h := adapthttp.New(adapthttp.Services{
		Auth:       authSvc,
		Dashboard:  app.NewDashboardService(backend.Repos, backend.Repos, backend.Repos),
		Categories: app.NewCategoryService(backend.Repos),
		Sites:      app.NewSiteService(backend.Repos),
		Settings:   app.NewSettingsService(backend.Repos),
	}, cfg.WebDir,
		adapthttp.WithLogger(logger),
		adapthttp.WithCORSOrigin(cfg.CORSAllowOrigin),
	).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.Store)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeSessions deletes expired session rows every interval until ctx ends.
func purgeSessions(ctx context.Context, auth *app.AuthService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("expired sessions purged", "count", n)
			}
		}
	}
}
