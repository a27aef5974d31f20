package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/tnguide/internal/domain"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// WithUser stores user in ctx.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFinder resolves the bot user behind a Telegram account.
type UserFinder interface {
	FindOrCreateTelegram(ctx context.Context, telegramID int64, firstName string, isAdmin bool) (*domain.User, bool, error)
}

// UserLoader returns middleware that loads the user into context. onNew runs
// once for every user seen for the first time; it may be nil.
func UserLoader(users UserFinder, cfg interface{ IsAdmin(int64) bool }, onNew func(*domain.User)) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			user, created, err := users.FindOrCreateTelegram(ctx, from.ID, from.FirstName, cfg.IsAdmin(from.ID))
			if err != nil {
				slog.Error("failed to load user", "error", err, "telegram_id", from.ID)
			} else {
				ctx = WithUser(ctx, user)
				if created && onNew != nil {
					onNew(user)
				}
			}

			next(ctx, b, update)
		}
	}
}
