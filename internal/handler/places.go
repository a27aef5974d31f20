package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/middleware"
	tg "github.com/set-night/tnguide/internal/telegram"
)

func (h *Handler) handlePlaces(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	h.sendPlacesPage(ctx, b, update.Message.Chat.ID, user.ID, commandArg(update.Message.Text), 1, 0)
}

func (h *Handler) handlePlacesPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	page, query, ok := parsePlacesCallback(update.CallbackQuery.Data)
	if !ok {
		return
	}

	var chatID int64
	var messageID int
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		chatID = msg.Chat.ID
		messageID = msg.ID
	}

	h.sendPlacesPage(ctx, b, chatID, user.ID, query, page, messageID)
}

// sendPlacesPage renders one page of the catalog. A non-zero messageID edits
// that message in place.
func (h *Handler) sendPlacesPage(ctx context.Context, b *bot.Bot, chatID, userID int64, query string, page, messageID int) {
	result, err := h.placeService.List(ctx, domain.PlaceFilter{Search: query}, page, config.BotPlacesPerPage)
	if err != nil {
		slog.Error("list places", "error", err)
		h.tgLogger.LogError(err, "list places")
		return
	}

	favorites, err := h.favoriteService.IDs(ctx, userID)
	if err != nil {
		slog.Warn("load favorite ids", "error", err)
		favorites = map[int64]bool{}
	}

	text := fmt.Sprintf("🗺 *Tourist places* (%d)", result.Total)
	if query != "" {
		text = fmt.Sprintf("🔎 *%s* (%d)", tg.EscapeMarkdown(query), result.Total)
	}
	if result.Total == 0 {
		text += "\n\nNothing found. Try another search, e.g. `/places temple`."
	}

	var rows [][]models.InlineKeyboardButton
	for _, p := range result.Places {
		label := fmt.Sprintf("📍 %s · %s", p.Name, p.District)
		if favorites[p.ID] {
			label = "⭐ " + label
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(label, idCallback(placeOpenPrefix, p.ID))))
	}

	if result.TotalPages > 1 {
		rows = append(rows, tg.PaginationRow(result.Page, result.TotalPages, func(page int) string {
			return placesCallback(page, query)
		}))
	}

	var keyboard models.ReplyMarkup
	if len(rows) > 0 {
		keyboard = tg.InlineKeyboard(rows...)
	}
	if messageID != 0 {
		if err := tg.EditMarkup(ctx, b, chatID, messageID, text, keyboard); err != nil {
			slog.Warn("edit places page", "error", err)
		}
		return
	}
	if err := tg.SendMarkup(ctx, b, chatID, text, keyboard); err != nil {
		slog.Error("send places page", "error", err)
	}
}

func (h *Handler) handlePlaceOpen(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	placeID, ok := parseIDCallback(update.CallbackQuery.Data, placeOpenPrefix)
	if !ok {
		return
	}

	var chatID int64
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	}

	h.sendPlaceCard(ctx, b, chatID, user.ID, placeID)
}

func (h *Handler) sendPlaceCard(ctx context.Context, b *bot.Bot, chatID, userID, placeID int64) {
	place, err := h.placeService.Get(ctx, placeID)
	if err != nil {
		if errors.Is(err, domain.ErrPlaceNotFound) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Place not found.",
			})
			return
		}
		slog.Error("get place", "error", err, "place_id", placeID)
		return
	}

	favorite, err := h.favoriteService.IsFavorite(ctx, userID, placeID)
	if err != nil {
		slog.Warn("check favorite", "error", err)
	}

	caption := tg.PlaceCard(*place, favorite)
	keyboard := h.placeKeyboard(*place, favorite)

	if place.ImageURL != "" {
		err := tg.SendPhotoURL(ctx, b, chatID, place.ImageURL, caption, keyboard)
		if err == nil {
			return
		}
		slog.Warn("failed to send place photo, falling back to text", "error", err, "place_id", placeID)
	}

	if err := tg.SendMarkup(ctx, b, chatID, caption, keyboard); err != nil {
		slog.Error("send place card", "error", err)
	}
}

func (h *Handler) placeKeyboard(place domain.Place, favorite bool) *models.InlineKeyboardMarkup {
	favLabel := "⭐ Save"
	if favorite {
		favLabel = "✖️ Unsave"
	}

	rows := [][]models.InlineKeyboardButton{
		tg.ButtonRow(tg.InlineButton("💬 Ask about this place", idCallback(placeAskPrefix, place.ID))),
		tg.ButtonRow(tg.InlineButton(favLabel, idCallback(favTogglePrefix, place.ID))),
	}
	var links []models.InlineKeyboardButton
	if url := tg.MapsURL(place); url != "" {
		links = append(links, tg.URLButton("🗺 Open map", url))
	}
	if h.botUsername != "" {
		links = append(links, tg.URLButton("🔗 Share", placeDeepLink(h.botUsername, place.ID)))
	}
	if len(links) > 0 {
		rows = append(rows, links)
	}
	return tg.InlineKeyboard(rows...)
}

// handlePlaceAsk grounds the user's conversation in the chosen place.
func (h *Handler) handlePlaceAsk(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	placeID, ok := parseIDCallback(update.CallbackQuery.Data, placeAskPrefix)
	if !ok {
		return
	}

	var chatID int64
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	}

	place, err := h.placeService.Get(ctx, placeID)
	if err != nil {
		slog.Error("get place", "error", err, "place_id", placeID)
		return
	}

	if _, err := h.sessionService.Ground(ctx, user, place.ID); err != nil {
		slog.Error("ground session", "error", err)
		h.tgLogger.LogError(err, "ground session")
		return
	}

	tg.SendMarkup(ctx, b, chatID, fmt.Sprintf(
		"💬 Now chatting about *%s*. Ask anything: timings, how to get there, what's nearby.\n\nSend /general to switch back.",
		tg.EscapeMarkdown(place.Name),
	), nil)
}
