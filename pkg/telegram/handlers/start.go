package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func Start() bot.HandlerFunc {
	const welcome = `👋 Send me a prompt and I will generate an image for it.

Prefix the prompt with a provider name to pick one explicitly:
  grok: a serene mountain landscape at sunset

Use /providers to see what is configured.`

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            welcome,
		})
	}
}
