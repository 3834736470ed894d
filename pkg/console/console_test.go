package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/imagine-ai/imagine/pkg/domain"
)

type fakeGenerator struct {
	providers []string

	gotProvider string
	gotPrompt   string
	gotParams   domain.ImageParams
}

func (f *fakeGenerator) Providers() []string { return f.providers }

func (f *fakeGenerator) Generate(_ context.Context, provider, prompt string, params domain.ImageParams) (string, error) {
	f.gotProvider = provider
	f.gotPrompt = prompt
	f.gotParams = params
	return "/tmp/out.png", nil
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantPrompt string
		wantParams domain.ImageParams
		wantErr    bool
	}{
		{
			name:       "plain prompt",
			line:       "a cozy coffee shop interior",
			wantPrompt: "a cozy coffee shop interior",
		},
		{
			name:       "trailing options",
			line:       "a dragon steps=50 width=1536 cfg_scale=10",
			wantPrompt: "a dragon",
			wantParams: domain.ImageParams{Steps: 50, Width: 1536, CFGScale: 10},
		},
		{
			name:       "typed enum options",
			line:       "a logo size=1024x1024 quality=hd style=vivid model=dall-e-3",
			wantPrompt: "a logo",
			wantParams: domain.ImageParams{
				Model:   "dall-e-3",
				Size:    domain.Size1024x1024,
				Quality: domain.QualityHD,
				Style:   domain.StyleVivid,
			},
		},
		{
			name:       "unrecognized key stays in the prompt",
			line:       "E=mc2 poster",
			wantPrompt: "E=mc2 poster",
		},
		{
			name:    "invalid numeric option",
			line:    "a tree width=huge",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, params, err := parseLine(tt.line)
			if tt.wantErr != (err != nil) {
				t.Fatalf("parseLine(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if prompt != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", prompt, tt.wantPrompt)
			}
			if params != tt.wantParams {
				t.Errorf("params = %+v, want %+v", params, tt.wantParams)
			}
		})
	}
}

func TestStartRoutesProviderPrefix(t *testing.T) {
	gen := &fakeGenerator{providers: []string{"grok", "openai"}}

	c := New(gen)
	c.in = strings.NewReader("openai: a city skyline quality=hd\nexit\n")
	c.out = &bytes.Buffer{}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if gen.gotProvider != "openai" {
		t.Errorf("provider = %q, want openai", gen.gotProvider)
	}
	if gen.gotPrompt != "a city skyline" {
		t.Errorf("prompt = %q, want %q", gen.gotPrompt, "a city skyline")
	}
	if gen.gotParams.Quality != domain.QualityHD {
		t.Errorf("quality = %q, want hd", gen.gotParams.Quality)
	}
}

func TestStartUsesDefaultProvider(t *testing.T) {
	gen := &fakeGenerator{providers: []string{"grok", "openai"}}

	c := New(gen)
	c.in = strings.NewReader("a peaceful zen garden\n")
	c.out = &bytes.Buffer{}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if gen.gotProvider != "grok" {
		t.Errorf("provider = %q, want the first configured provider", gen.gotProvider)
	}
}
