package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/imagine-ai/imagine/pkg/domain"
	"github.com/samber/lo"
)

type generator interface {
	Generate(ctx context.Context, provider, prompt string, params domain.ImageParams) (string, error)
	Providers() []string
}

// Console is the interactive front end: one prompt per line, an optional
// "<provider>:" prefix, and trailing key=value options. It invokes the
// generator once per line and keeps going on failure.
type Console struct {
	generator generator
	in        io.Reader
	out       io.Writer
}

func New(g generator) *Console {
	return &Console{
		generator: g,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Start(ctx context.Context) error {
	providers := c.generator.Providers()
	if len(providers) == 0 {
		return errors.New("no providers configured")
	}
	defaultProvider := providers[0]

	color.New(color.FgCyan, color.Bold).Fprintln(c.out, "imagine — text-to-image generation")
	fmt.Fprintf(c.out, "providers: %s (default: %s)\n", strings.Join(providers, ", "), defaultProvider)
	fmt.Fprintln(c.out, `usage: [<provider>:] <prompt> [model=... size=... quality=... style=... width=... height=... steps=... cfg_scale=...]`)

	scanner := bufio.NewScanner(c.in)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		provider := defaultProvider
		if before, after, ok := strings.Cut(line, ":"); ok {
			if name := strings.ToLower(strings.TrimSpace(before)); lo.Contains(providers, name) {
				provider = name
				line = strings.TrimSpace(after)
			}
		}

		prompt, params, err := parseLine(line)
		if err != nil {
			color.New(color.FgRed).Fprintf(c.out, "✗ %s\n", err)
			continue
		}

		path, err := c.generator.Generate(ctx, provider, prompt, params)
		if err != nil {
			color.New(color.FgRed).Fprintf(c.out, "✗ %s\n", err)
			continue
		}

		color.New(color.FgGreen).Fprintf(c.out, "✓ saved %s\n", path)
	}
}

// parseLine splits trailing key=value option tokens from the prompt text.
// Tokens with an unrecognized key stay part of the prompt.
func parseLine(line string) (string, domain.ImageParams, error) {
	var params domain.ImageParams
	var promptWords []string

	for _, tok := range strings.Fields(line) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			promptWords = append(promptWords, tok)
			continue
		}

		switch strings.ToLower(key) {
		case "model":
			params.Model = value
		case "size":
			params.Size = domain.ImageSize(value)
		case "quality":
			params.Quality = domain.ImageQuality(value)
		case "style":
			params.Style = domain.ImageStyle(value)
		case "width":
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", params, fmt.Errorf("invalid width %q", value)
			}
			params.Width = n
		case "height":
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", params, fmt.Errorf("invalid height %q", value)
			}
			params.Height = n
		case "steps":
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", params, fmt.Errorf("invalid steps %q", value)
			}
			params.Steps = n
		case "cfg_scale":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return "", params, fmt.Errorf("invalid cfg_scale %q", value)
			}
			params.CFGScale = f
		default:
			promptWords = append(promptWords, tok)
		}
	}

	return strings.Join(promptWords, " "), params, nil
}
