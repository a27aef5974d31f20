package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/places", bot.MatchTypePrefix, h.handlePlaces)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/favorite", bot.MatchTypePrefix, h.handleFavorite)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/general", bot.MatchTypePrefix, h.handleGeneral)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stat", bot.MatchTypePrefix, h.handleStat)

	// Catalog callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, placesPagePrefix, bot.MatchTypePrefix, h.handlePlacesPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, placeOpenPrefix, bot.MatchTypePrefix, h.handlePlaceOpen)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, placeAskPrefix, bot.MatchTypePrefix, h.handlePlaceAsk)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, favTogglePrefix, bot.MatchTypePrefix, h.handleFavToggle)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, unfavPrefix, bot.MatchTypePrefix, h.handleUnfavorite)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop is a no-op callback handler used for pagination indicators and other
// non-interactive inline buttons. It simply acknowledges the callback query.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
