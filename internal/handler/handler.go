package handler

import (
	"github.com/go-telegram/bot"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/service"
	"github.com/set-night/tnguide/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot             *bot.Bot
	cfg             *config.Config
	userService     *service.UserService
	sessionService  *service.SessionService
	chatService     *service.ChatService
	placeService    *service.PlaceService
	favoriteService *service.FavoriteService
	statsService    *service.StatsService
	tgLogger        *telegram.TelegramLogger
	botUsername     string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot             *bot.Bot
	Cfg             *config.Config
	UserService     *service.UserService
	SessionService  *service.SessionService
	ChatService     *service.ChatService
	PlaceService    *service.PlaceService
	FavoriteService *service.FavoriteService
	StatsService    *service.StatsService
	TgLogger        *telegram.TelegramLogger
	BotUsername     string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:             deps.Bot,
		cfg:             deps.Cfg,
		userService:     deps.UserService,
		sessionService:  deps.SessionService,
		chatService:     deps.ChatService,
		placeService:    deps.PlaceService,
		favoriteService: deps.FavoriteService,
		statsService:    deps.StatsService,
		tgLogger:        deps.TgLogger,
		botUsername:     deps.BotUsername,
	}
}
