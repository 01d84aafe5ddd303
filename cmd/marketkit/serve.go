package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"marketkit/internal/cache"
	"marketkit/internal/database"
	"marketkit/internal/handlers"
	"marketkit/internal/middleware"
	"marketkit/internal/router"
)

// shutdownTimeout is how long active requests get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Connects to PostgreSQL and Valkey, applies pending migrations and serves
the JSON API until SIGINT or SIGTERM. In development an empty database is
seeded with a demo marketplace.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := connectDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Valkey backs the translation cache and the signup rate limiter.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	svc, err := newServices(db, cfg, cache.NewTranslationCache(valkeyClient, cfg.TranslationCacheTTL))
	if err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(cmd.Context(), db, svc.marketplaces); err != nil {
			return err
		}
	}

	api := handlers.NewAPI(svc.marketplaces, svc.shapes, svc.catalog)
	signupLimiter := middleware.NewValkeyRateLimiter(valkeyClient, "signup", cfg.SignupRateLimit, cfg.SignupRateWindow)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(api, signupLimiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
