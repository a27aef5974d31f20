package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/middleware"
	tg "github.com/set-night/tnguide/internal/telegram"
)

func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	if _, err := h.sessionService.Reset(ctx, user); err != nil {
		slog.Error("reset session", "error", err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🔄 Started a new conversation.",
	})
}

func (h *Handler) handleGeneral(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	if _, err := h.sessionService.General(ctx, user); err != nil {
		slog.Error("switch to general", "error", err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🌴 Ask me anything about tourism in Tamil Nadu.",
	})
}

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	turns, err := h.sessionService.Recent(ctx, user, config.HistoryPreview)
	if err != nil {
		slog.Error("load history", "error", err)
		return
	}

	if len(turns) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 No messages in this conversation yet.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 *Recent questions*\n")
	for _, t := range turns {
		fmt.Fprintf(&sb, "\n🕐 %s\n❓ %s\n💬 %s\n",
			t.CreatedAt.Format("02 Jan 15:04"),
			tg.EscapeMarkdown(preview(t.Message, 120)),
			tg.EscapeMarkdown(preview(t.Response, 200)),
		)
	}

	tg.SendLongMessage(ctx, b, chatID, sb.String(), nil)
}

func preview(s string, limit int) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
