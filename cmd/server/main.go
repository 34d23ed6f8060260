// Command server is the entry point for the DevSwipe backend.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devswipe/internal/bootstrap"
	"devswipe/internal/config"
	"devswipe/internal/middleware"
	"devswipe/internal/server"

	"github.com/joho/godotenv"
)

// @title DevSwipe API
// @version 1.0
// @description Developer discovery API with profiles, project ideas, collaboration posts, direct messaging and realtime events.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@devswipe.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		middleware.Logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment and config.yml still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		middleware.Logger.Warn("failed to read .env", slog.String("error", err.Error()))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedPreset: cfg.DevSeedPreset})
	if err != nil {
		return err
	}

	srv, err := server.NewServer(ctx, cfg, rt.DB, rt.Redis)
	if err != nil {
		rt.Close(ctx)
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		middleware.Logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			middleware.Logger.Error("listener stopped", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		middleware.Logger.Error("server resource shutdown error", slog.String("error", err.Error()))
	}
	if err := rt.ShutdownTrace(shutdownCtx); err != nil {
		middleware.Logger.Error("trace flush error", slog.String("error", err.Error()))
	}

	middleware.Logger.Info("server stopped")
	return nil
}
