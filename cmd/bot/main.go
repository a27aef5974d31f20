package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tnguide "github.com/set-night/tnguide"
	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/handler"
	"github.com/set-night/tnguide/internal/middleware"
	"github.com/set-night/tnguide/internal/repository"
	"github.com/set-night/tnguide/internal/service"
	"github.com/set-night/tnguide/internal/telegram"
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

	if err := cfg.ValidateBot(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"admin_ids", cfg.AdminIDsString(),
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
	chatService := service.NewChatService(queries, placeService, assistant)
	userService := service.NewUserService(queries)
	sessionService := service.NewSessionService(userService, chatService)
	favoriteService := service.NewFavoriteService(queries)
	statsService := service.NewStatsService(queries)

	// Handler and logger pointers for use in closures created before the bot exists
	var h *handler.Handler
	var tgLogger *telegram.TelegramLogger

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(queries, config.RateLimitPerMinute),
			middleware.UserLoader(userService, cfg, func(u *domain.User) {
				tgLogger.LogRegistration(u)
			}),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			// Photos, stickers and other non-text messages
			h.HandleTextPrivate(ctx, b, update)
		}),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Initialize telegram logger
	tgLogger = telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:             b,
		Cfg:             cfg,
		UserService:     userService,
		SessionService:  sessionService,
		ChatService:     chatService,
		PlaceService:    placeService,
		FavoriteService: favoriteService,
		StatsService:    statsService,
		TgLogger:        tgLogger,
		BotUsername:     me.Username,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for assistant messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleTextPrivate(ctx, b, update)
	})

	// Start stale rate-limit counter cleanup goroutine
	go func() {
		ticker := time.NewTicker(config.RateLimitCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := queries.CleanupRateLimits(context.Background()); err != nil {
					slog.Error("cleanup rate limits", "error", err)
				}
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID, "assistant", assistant.Configured())
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
