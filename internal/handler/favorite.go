package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/middleware"
	tg "github.com/set-night/tnguide/internal/telegram"
)

func (h *Handler) handleFavorite(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	text, keyboard, err := h.favoritesView(ctx, user.ID)
	if err != nil {
		slog.Error("list favorites", "error", err)
		return
	}

	tg.SendMarkup(ctx, b, chatID, text, keyboard)
}

// handleFavToggle flips a favorite and refreshes the keyboard it was pressed on.
func (h *Handler) handleFavToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	placeID, ok := parseIDCallback(update.CallbackQuery.Data, favTogglePrefix)
	if !ok {
		return
	}

	action, err := h.favoriteService.Toggle(ctx, user.ID, placeID)
	if err != nil {
		slog.Error("toggle favorite", "error", err, "place_id", placeID)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "❌ Could not update favorites.",
		})
		return
	}

	text := "Removed from favorites"
	if action == domain.FavoriteAdded {
		text = "Added to favorites"
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}

	place, err := h.placeService.Get(ctx, placeID)
	if err != nil {
		return
	}
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: h.placeKeyboard(*place, action == domain.FavoriteAdded),
	})
}

// handleUnfavorite removes a place from the saved list and redraws the list.
func (h *Handler) handleUnfavorite(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            "Removed from favorites",
	})

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	placeID, ok := parseIDCallback(update.CallbackQuery.Data, unfavPrefix)
	if !ok {
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(ctx, user.ID, placeID)
	if err != nil {
		slog.Error("check favorite", "error", err)
		return
	}
	if isFavorite {
		if _, err := h.favoriteService.Toggle(ctx, user.ID, placeID); err != nil {
			slog.Error("remove favorite", "error", err, "place_id", placeID)
			return
		}
	}

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	text, keyboard, err := h.favoritesView(ctx, user.ID)
	if err != nil {
		slog.Error("list favorites", "error", err)
		return
	}
	tg.EditMarkup(ctx, b, msg.Chat.ID, msg.ID, text, keyboard)
}

func (h *Handler) favoritesView(ctx context.Context, userID int64) (string, models.ReplyMarkup, error) {
	places, err := h.favoriteService.List(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if len(places) == 0 {
		return "⭐ You have no saved places yet.\n\nUse /places to browse the catalog.", nil, nil
	}

	var rows [][]models.InlineKeyboardButton
	for _, p := range places {
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton("📍 "+p.Name, idCallback(placeOpenPrefix, p.ID)),
			tg.InlineButton("❌", idCallback(unfavPrefix, p.ID)),
		))
	}
	return "⭐ *Saved places:*", tg.InlineKeyboard(rows...), nil
}
