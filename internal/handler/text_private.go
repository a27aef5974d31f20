package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/middleware"
	"github.com/set-night/tnguide/internal/service"
	tg "github.com/set-night/tnguide/internal/telegram"
)

// HandleTextPrivate answers free-text messages through the assistant.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message

	// Skip commands
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := msg.Chat.ID

	if strings.TrimSpace(msg.Text) == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✍️ Please send your question as text.",
		})
		return
	}

	sessionID, err := h.sessionService.Current(ctx, user)
	if err != nil {
		slog.Error("current session", "error", err)
		h.tgLogger.LogError(err, "current session")
		return
	}

	if err := h.userService.UpdateLastInteraction(ctx, user.ID); err != nil {
		slog.Warn("update last interaction", "error", err)
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	userID := user.ID
	result, err := h.chatService.Send(ctx, service.ChatInput{
		Message:   msg.Text,
		PlaceID:   user.ChatPlaceID,
		SessionID: sessionID,
		UserID:    &userID,
	})
	if err != nil {
		slog.Error("chat send", "error", err, "user_id", user.ID)
		h.tgLogger.LogError(err, "chat send")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Something went wrong. Please try again.",
		})
		return
	}

	if result.Kind == service.ReplyFailed {
		h.tgLogger.LogError(errors.New(result.Turn.Response), "assistant reply")
	}

	text := tg.EscapeMarkdown(result.Turn.Response)
	if result.Kind == service.ReplyGenerated {
		text = tg.FromModelMarkdown(result.Turn.Response)
	}

	replyTo := msg.ID
	if err := tg.SendLongMessage(ctx, b, chatID, text, &replyTo); err != nil {
		slog.Error("send reply", "error", err)
	}
}
