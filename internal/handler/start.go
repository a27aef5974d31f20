package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/middleware"
	tg "github.com/set-night/tnguide/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	// Deep link: t.me/<bot>?start=place_<id>
	if payload := commandArg(update.Message.Text); strings.HasPrefix(payload, placeOpenPrefix) {
		if placeID, ok := parseIDCallback(payload, placeOpenPrefix); ok {
			h.sendPlaceCard(ctx, b, chatID, user.ID, placeID)
			return
		}
	}

	name := user.FirstName
	if name == "" {
		name = "traveller"
	}

	welcomeText := fmt.Sprintf(
		"👋 Vanakkam, *%s*!\n\n"+
			"I'm your Tourist Assistant for Tamil Nadu. Ask me about temples, beaches, "+
			"hill stations and everything in between.\n\n"+
			"📋 *Commands:*\n"+
			"/places — Browse the catalog (try `/places ooty`)\n"+
			"/favorite — Your saved places\n"+
			"/general — Stop talking about a specific place\n"+
			"/reset — Start a new conversation\n"+
			"/history — Recent questions\n\n"+
			"Just send a message to start chatting!",
		tg.EscapeMarkdown(name),
	)

	if !h.cfg.AssistantConfigured() {
		welcomeText += "\n\n⚠️ The chat assistant is not configured yet. Browsing places still works."
	}

	tg.SendMarkup(ctx, b, chatID, welcomeText, nil)
}
