package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imagine-ai/imagine/pkg/domain"
)

const (
	defaultBaseURL = "https://api.stability.ai/v1"

	defaultWidth    = 1024
	defaultHeight   = 1024
	defaultSteps    = 30
	defaultCFGScale = 7
)

type client struct {
	token   string
	baseURL string
	hc      *http.Client
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	return &client{
		token:   token,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

func (c *client) Name() string { return domain.ProviderStability }

func (c *client) Generate(ctx context.Context, prompt string, params domain.ImageParams) (*domain.ImageResult, error) {
	engine := params.Model
	if engine == "" {
		engine = domain.SDXLEngine
	}

	body := textToImageRequest{
		TextPrompts: []textPrompt{{Text: prompt}},
		Width:       valueOrDefault(params.Width, defaultWidth),
		Height:      valueOrDefault(params.Height, defaultHeight),
		Steps:       valueOrDefault(params.Steps, defaultSteps),
		CFGScale:    params.CFGScale,
		Samples:     1,
	}
	if body.CFGScale == 0 {
		body.CFGScale = defaultCFGScale
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/generation/%s/text-to-image", c.baseURL, engine)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	var resp textToImageResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &domain.ProviderError{Provider: domain.ProviderStability, Message: fmt.Sprintf("parsing response: %v", err)}
	}

	if len(resp.Artifacts) == 0 || resp.Artifacts[0].Base64 == "" {
		return nil, &domain.ProviderError{Provider: domain.ProviderStability, Message: "response contains no image data"}
	}

	return &domain.ImageResult{
		B64:      resp.Artifacts[0].Base64,
		Provider: domain.ProviderStability,
		Model:    engine,
	}, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ProviderError{Provider: domain.ProviderStability, StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

func valueOrDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
