package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

func ShowProviders(providers []string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		lines := lo.Map(providers, func(name string, _ int) string {
			return "• " + name
		})

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            "🎨 Configured providers:\n" + strings.Join(lines, "\n"),
		})
	}
}
