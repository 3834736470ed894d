package imagegen

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/imagine-ai/imagine/pkg/domain"
	"github.com/imagine-ai/imagine/pkg/download"
	"github.com/imagine-ai/imagine/pkg/imagegen/grok"
	"github.com/imagine-ai/imagine/pkg/imagegen/openai"
	"github.com/imagine-ai/imagine/pkg/imagegen/replicate"
	"github.com/imagine-ai/imagine/pkg/imagegen/stability"
	"github.com/imagine-ai/imagine/pkg/imagegen/together"
	"github.com/imagine-ai/imagine/pkg/storage"
	"github.com/samber/lo"
)

// Adapter translates the normalized (prompt, params) pair into one
// provider's wire format and back into a normalized result.
type Adapter interface {
	Name() string
	Generate(ctx context.Context, prompt string, params domain.ImageParams) (*domain.ImageResult, error)
}

type resultFetcher interface {
	Fetch(ctx context.Context, result *domain.ImageResult) ([]byte, error)
}

type imageStore interface {
	Save(provider, prompt string, data []byte) (string, error)
}

// Generator dispatches generation requests to the adapter registered for
// the named provider, then pipes the result through download and storage.
// The registry is fixed at construction time; concurrent Generate calls
// are safe.
type Generator struct {
	adapters map[string]Adapter
	fetcher  resultFetcher
	store    imageStore
}

type config struct {
	credentials map[string]string
	adapters    []Adapter
}

type Option func(*config)

// WithProvider registers a credential for one of the known providers.
// Passing the same name twice overwrites the earlier credential.
func WithProvider(name, key string) Option {
	return func(c *config) {
		c.credentials[strings.ToLower(strings.TrimSpace(name))] = key
	}
}

// WithAdapter injects a ready-made adapter, keyed by its Name. Used for
// custom providers and in tests.
func WithAdapter(a Adapter) Option {
	return func(c *config) {
		c.adapters = append(c.adapters, a)
	}
}

func New(outputDir string, opts ...Option) (*Generator, error) {
	cfg := &config{credentials: make(map[string]string)}
	for _, opt := range opts {
		opt(cfg)
	}

	g := &Generator{
		adapters: make(map[string]Adapter),
		fetcher:  download.NewFetcher(),
		store:    storage.NewImageStore(outputDir),
	}

	for name, key := range cfg.credentials {
		adapter, err := newAdapter(name, key)
		if err != nil {
			return nil, fmt.Errorf("configuring provider %q: %w", name, err)
		}
		g.adapters[name] = adapter
	}

	for _, adapter := range cfg.adapters {
		g.adapters[strings.ToLower(adapter.Name())] = adapter
	}

	return g, nil
}

func newAdapter(name, key string) (Adapter, error) {
	switch name {
	case domain.ProviderOpenAI:
		return openai.NewClient(key)
	case domain.ProviderGrok:
		return grok.NewClient(key)
	case domain.ProviderStability:
		return stability.NewClient(key)
	case domain.ProviderReplicate:
		return replicate.NewClient(key)
	case domain.ProviderTogether:
		return together.NewClient(key)
	default:
		return nil, domain.ErrUnknownProvider
	}
}

// Providers returns the configured provider names, sorted.
func (g *Generator) Providers() []string {
	names := lo.Keys(g.adapters)
	sort.Strings(names)
	return names
}

// Generate runs the full pipeline for one prompt: validate, dispatch to
// the provider adapter, fetch the image bytes, persist them, and return
// the stored file path. Failures at any stage surface to the caller with
// their diagnostic detail; nothing is retried.
func (g *Generator) Generate(ctx context.Context, provider, prompt string, params domain.ImageParams) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ErrEmptyPrompt
	}

	name := strings.ToLower(strings.TrimSpace(provider))

	adapter, ok := g.adapters[name]
	if !ok {
		if lo.Contains(domain.KnownProviders, name) {
			return "", fmt.Errorf("%s: %w", name, domain.ErrProviderNotConfigured)
		}
		return "", fmt.Errorf("%q: %w", provider, domain.ErrUnknownProvider)
	}

	slog.InfoContext(ctx, "Generating image", "provider", name, "model", params.Model)

	result, err := adapter.Generate(ctx, prompt, params)
	if err != nil {
		return "", fmt.Errorf("generating image with %s: %w", name, err)
	}

	data, err := g.fetcher.Fetch(ctx, result)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}

	path, err := g.store.Save(result.Provider, prompt, data)
	if err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	slog.InfoContext(ctx, "Image saved", "provider", name, "model", result.Model, "path", path, "size", len(data))

	return path, nil
}
