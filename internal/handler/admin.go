package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/middleware"
)

func (h *Handler) handleStat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil || !user.IsAdmin {
		return
	}

	chatID := update.Message.Chat.ID

	stats, err := h.statsService.Collect(ctx)
	if err != nil {
		slog.Error("collect stats", "error", err)
		return
	}

	text := fmt.Sprintf(
		"📊 *Statistics*\n\n"+
			"🗺 Places: %d\n"+
			"👥 Users: %d\n"+
			"💬 Chat turns: %d\n"+
			"⭐ Favorites: %d",
		stats.Places,
		stats.Users,
		stats.ChatTurns,
		stats.Favorites,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
