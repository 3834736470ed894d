package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/go-telegram/bot"
	"github.com/imagine-ai/imagine/pkg/console"
	"github.com/imagine-ai/imagine/pkg/domain"
	"github.com/imagine-ai/imagine/pkg/imagegen"
	"github.com/imagine-ai/imagine/pkg/logger"
	"github.com/imagine-ai/imagine/pkg/services"
	"github.com/imagine-ai/imagine/pkg/telegram/handlers"
	"github.com/imagine-ai/imagine/pkg/telegram/middleware"
	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIKey      string `env:"OPENAI_API_KEY"`
	GrokKey        string `env:"GROK_API_KEY"`
	StabilityKey   string `env:"STABILITY_API_KEY"`
	ReplicateToken string `env:"REPLICATE_API_TOKEN"`
	TogetherKey    string `env:"TOGETHER_API_KEY"`

	OutputDir string `env:"OUTPUT_DIR" envDefault:"generated_images"`

	TelegramBotToken          string  `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAuthorizedUserIDs []int64 `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, err := setupServices(ctx)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Start(ctx)
}

func setupServices(_ context.Context) (services.Group, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	credentials := map[string]string{
		domain.ProviderOpenAI:    cfg.OpenAIKey,
		domain.ProviderGrok:      cfg.GrokKey,
		domain.ProviderStability: cfg.StabilityKey,
		domain.ProviderReplicate: cfg.ReplicateToken,
		domain.ProviderTogether:  cfg.TogetherKey,
	}

	var opts []imagegen.Option
	for name, key := range credentials {
		if key != "" {
			opts = append(opts, imagegen.WithProvider(name, key))
		}
	}
	if len(opts) == 0 {
		return nil, errors.New("no providers configured: set at least one provider API key")
	}

	generator, err := imagegen.New(cfg.OutputDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating image generator: %w", err)
	}

	slog.Info("image generator ready", "providers", generator.Providers(), "outputDir", cfg.OutputDir)

	var svcGroup services.Group

	if cfg.TelegramBotToken != "" {
		botOpts := []bot.Option{
			bot.WithMiddlewares(
				middleware.Auth(cfg.TelegramAuthorizedUserIDs),
				middleware.Typing,
			),
			bot.WithDefaultHandler(handlers.GenerateImage(generator)),
			bot.WithMessageTextHandler("/start", bot.MatchTypePrefix, handlers.Start()),
			bot.WithMessageTextHandler("/providers", bot.MatchTypePrefix, handlers.ShowProviders(generator.Providers())),
		}

		b, err := bot.New(cfg.TelegramBotToken, botOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating telegram bot: %w", err)
		}

		svc, err := services.NewTelegramBot(b)
		if err != nil {
			return nil, err
		}
		svcGroup = append(svcGroup, svc)
	} else {
		svcGroup = append(svcGroup, console.New(generator))
	}

	return svcGroup, nil
}
