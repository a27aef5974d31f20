package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	tnguide "github.com/set-night/tnguide"
	"github.com/set-night/tnguide/internal/api"
	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/repository"
	"github.com/set-night/tnguide/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := cfg.ValidateServer(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"port", cfg.Port,
		"redis", cfg.RedisEnabled(),
		"assistant", cfg.AssistantConfigured(),
	)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(tnguide.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	queries := repository.New(pool)

	// Optional place cache
	rdb := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if rdb != nil {
		defer rdb.Close()
	}

	// Initialize services
	openAI := service.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	assistant := service.NewAssistant(cfg.OpenAIKey, openAI)
	placeService := service.NewPlaceService(queries, rdb)

	h := api.NewHandler(api.Deps{
		Places:              placeService,
		Favorites:           service.NewFavoriteService(queries),
		Chat:                service.NewChatService(queries, placeService, assistant),
		Accounts:            service.NewUserService(queries),
		Tokens:              service.NewTokenService(cfg.JWTSecret, config.TokenExpiration),
		AssistantConfigured: assistant.Configured(),
	})

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(h, cfg.FrontendURL),
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "assistant", assistant.Configured())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}
