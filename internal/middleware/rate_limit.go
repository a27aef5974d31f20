package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RateCounter bumps and returns a chat's message count for the current minute.
type RateCounter interface {
	CheckAndIncrementRateLimit(ctx context.Context, chatID int64) (int32, error)
}

// RateLimit returns middleware that enforces per-minute rate limits.
func RateLimit(counter RateCounter, limit int) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only text messages reach the assistant; callbacks pass through
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID

			count, err := counter.CheckAndIncrementRateLimit(ctx, chatID)
			if err != nil {
				slog.Error("rate limit check failed", "error", err, "chat_id", chatID)
				next(ctx, b, update)
				return
			}

			if int(count) > limit {
				slog.Debug("rate limited", "chat_id", chatID, "count", count, "limit", limit)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many messages. Please wait a minute and try again.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
