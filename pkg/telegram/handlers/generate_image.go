package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/imagine-ai/imagine/pkg/domain"
	"github.com/samber/lo"
)

type generateImageGenerator interface {
	Generate(ctx context.Context, provider, prompt string, params domain.ImageParams) (string, error)
	Providers() []string
}

func GenerateImage(generator generateImageGenerator) bot.HandlerFunc {
	parseRequest := func(text string) (string, string) {
		providers := generator.Providers()

		provider := ""
		if len(providers) > 0 {
			provider = providers[0]
		}

		if before, after, ok := strings.Cut(text, ":"); ok {
			if name := strings.ToLower(strings.TrimSpace(before)); lo.Contains(providers, name) {
				return name, strings.TrimSpace(after)
			}
		}

		return provider, strings.TrimSpace(text)
	}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}

		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		text := lo.CoalesceOrEmpty(update.Message.Text, update.Message.Caption)

		provider, prompt := parseRequest(text)
		if prompt == "" {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "❌ Send a prompt, optionally prefixed with a provider name, e.g. \"grok: a cat in a spacesuit\"",
			})
			return
		}

		slog.InfoContext(ctx, "Generating image from chat", "provider", provider, "chatID", chatID)

		path, err := generator.Generate(ctx, provider, prompt, domain.ImageParams{})
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Image generation failed: %s", err),
			})
			return
		}

		imageData, err := os.ReadFile(path)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Failed to read saved image: %s", err),
			})
			return
		}

		b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Photo: &models.InputFileUpload{
				Filename: filepath.Base(path),
				Data:     bytes.NewReader(imageData),
			},
			Caption: fmt.Sprintf("%s · %s", provider, filepath.Base(path)),
		})
	}
}
