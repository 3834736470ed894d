package openai

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

const defaultBaseURL = "https://api.openai.com/v1"

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

func (c *client) Name() string { return domain.ProviderOpenAI }

func (c *client) Generate(ctx context.Context, prompt string, params domain.ImageParams) (*domain.ImageResult, error) {
	model := params.Model
	if model == "" {
		model = domain.DallE3Model
	}

	if err := validateSize(params.Size); err != nil {
		return nil, err
	}

	body := imageGenerationRequest{
		Model:  model,
		Prompt: prompt,
		N:      1,
		Size:   string(params.Size),
	}

	// quality and style exist only on the DALL-E 3 tier; earlier models
	// reject requests that carry them.
	if model == domain.DallE3Model {
		body.Quality = string(params.Quality)
		body.Style = string(params.Style)
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	var resp imageGenerationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &domain.ProviderError{Provider: domain.ProviderOpenAI, Message: fmt.Sprintf("parsing response: %v", err)}
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, &domain.ProviderError{Provider: domain.ProviderOpenAI, Message: "response contains no image URL"}
	}

	return &domain.ImageResult{
		URL:      resp.Data[0].URL,
		Provider: domain.ProviderOpenAI,
		Model:    model,
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
		return nil, &domain.ProviderError{Provider: domain.ProviderOpenAI, StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

func validateSize(size domain.ImageSize) error {
	switch size {
	case "", domain.Size256x256, domain.Size512x512, domain.Size1024x1024, domain.Size1024x1792, domain.Size1792x1024:
		return nil
	default:
		return fmt.Errorf("unsupported image size: %s", size)
	}
}
