package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

// Auth drops updates from users outside the authorized list. An empty list
// means the bot is open to everyone.
func Auth(authorizedUserIDs []int64) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if len(authorizedUserIDs) == 0 {
				next(ctx, b, update)
				return
			}

			userID := senderID(update)
			if !lo.Contains(authorizedUserIDs, userID) {
				slog.WarnContext(ctx, "Dropping update from unauthorized user", "userID", userID)
				return
			}

			next(ctx, b, update)
		}
	}
}

func senderID(update *models.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}
