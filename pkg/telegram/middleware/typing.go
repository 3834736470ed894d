package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Typing shows an upload indicator while an image request is processed.
func Typing(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil {
			b.SendChatAction(ctx, &bot.SendChatActionParams{
				ChatID:          update.Message.Chat.ID,
				MessageThreadID: update.Message.MessageThreadID,
				Action:          models.ChatActionUploadPhoto,
			})
		}

		next(ctx, b, update)
	}
}
