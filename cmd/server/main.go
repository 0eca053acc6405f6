// Package main is the entry point for the CineSocial web client server.
// It loads configuration, connects to Redis, wires the movie service
// gateway and session layer, and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cinesocial/webclient/internal/app"
	"github.com/cinesocial/webclient/internal/config"
	"github.com/cinesocial/webclient/internal/database"
	"github.com/cinesocial/webclient/internal/gateway"
	"github.com/cinesocial/webclient/internal/movies"
	"github.com/cinesocial/webclient/internal/session"
	"github.com/cinesocial/webclient/internal/web"
)

func main() {
	// --- Load Configuration ---
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment.
	setupLogging(cfg)

	slog.Info("starting web client",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("upstream", cfg.Upstream.BaseURL),
	)

	// --- Connect to Redis ---
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer rdb.Close()
	slog.Info("connected to Redis")

	// --- Wire Dependencies ---
	gw := gateway.NewClient(cfg.Upstream.BaseURL, &http.Client{
		Timeout: cfg.Upstream.Timeout,
	}, slog.Default())

	store := session.NewRedisStore(rdb, cfg.Session.TTL)
	sessions := session.NewManager(store)
	loader := movies.NewDetailLoader(gw)
	handler := web.NewHandler(gw, sessions, loader)

	// --- Create Application ---
	application := app.New(cfg, rdb)
	application.RegisterRoutes(handler, sessions)

	// --- Graceful Shutdown ---
	// Listen for interrupt/term signals to drain connections cleanly.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		// Give in-flight requests 10 seconds to complete.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(ctx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		// Echo returns http.ErrServerClosed on graceful shutdown, which is expected.
		slog.Info("server stopped", slog.Any("reason", err))
	}
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format for readability. Production uses JSON for
// structured log aggregation.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler

	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	slog.SetDefault(slog.New(handler))
}
