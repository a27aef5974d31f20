package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Generation backend. An empty key leaves the assistant in unconfigured mode.
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`

	// HTTP server
	Port        int    `env:"PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"release"`
	FrontendURL string `env:"FRONTEND_URL"`
	JWTSecret   string `env:"JWT_SECRET"`

	// Redis cache (optional)
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Telegram bot
	BotToken           string `env:"BOT_TOKEN"`
	DropPendingUpdates bool   `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Telegram logging
	LogTelegramChatID    int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError        int   `env:"LOG_TOPIC_ERROR"`
	LogTopicRegistration int   `env:"LOG_TOPIC_REGISTRATION"`
}

// Load reads an optional .env file and then parses the environment.
// Variables already present in the environment win over .env values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no .env file found, using environment only")
		} else {
			slog.Warn("failed to load .env file", "error", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing required environment variables: JWT_SECRET")
	}
	if c.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, the assistant will run in unconfigured mode")
	}
	if c.FrontendURL == "" {
		slog.Warn("FRONTEND_URL is not set, allowing all CORS origins")
	}
	return nil
}

// ValidateBot checks the settings only the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("missing required environment variables: BOT_TOKEN")
	}
	if c.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, the assistant will run in unconfigured mode")
	}
	return nil
}

func (c *Config) AssistantConfigured() bool {
	return strings.TrimSpace(c.OpenAIKey) != ""
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) AdminIDsString() string {
	parts := make([]string, len(c.AdminIDs))
	for i, id := range c.AdminIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
