package replicate

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
	defaultBaseURL         = "https://api.replicate.com/v1"
	defaultPollingTimeout  = 60 * time.Second
	defaultPollingInterval = 1 * time.Second
)

type client struct {
	token           string
	baseURL         string
	hc              *http.Client
	pollingInterval time.Duration
	pollingTimeout  time.Duration
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	return &client{
		token:           token,
		baseURL:         defaultBaseURL,
		hc:              &http.Client{},
		pollingInterval: defaultPollingInterval,
		pollingTimeout:  defaultPollingTimeout,
	}, nil
}

func (c *client) Name() string { return domain.ProviderReplicate }

func (c *client) Generate(ctx context.Context, prompt string, params domain.ImageParams) (*domain.ImageResult, error) {
	model := params.Model
	if model == "" {
		model = domain.FluxSchnellModel
	}

	input := map[string]interface{}{
		"prompt": prompt,
	}
	if params.Width > 0 {
		input["width"] = params.Width
	}
	if params.Height > 0 {
		input["height"] = params.Height
	}
	if params.Steps > 0 {
		input["num_inference_steps"] = params.Steps
	}

	reqBody, err := json.Marshal(createPredictionRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	predictionURL := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, predictionURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	var pred prediction
	if err := json.Unmarshal(respBody, &pred); err != nil {
		return nil, fmt.Errorf("failed to parse prediction response: %w", err)
	}

	// A fresh prediction usually starts in a non-terminal state; poll the
	// status endpoint until it settles or the polling window closes.
	if !isTerminalStatus(pred.Status) {
		pred, err = c.pollPrediction(ctx, pred.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to poll prediction: %w", err)
		}
	}

	if pred.Status != predictionStatusSucceeded {
		return nil, &domain.ProviderError{
			Provider: domain.ProviderReplicate,
			Message:  fmt.Sprintf("prediction %s finished with status %s: %s", pred.ID, pred.Status, pred.Error),
		}
	}

	outputURL, err := pred.outputURL()
	if err != nil {
		return nil, &domain.ProviderError{Provider: domain.ProviderReplicate, Message: err.Error()}
	}

	return &domain.ImageResult{
		URL:      outputURL,
		Provider: domain.ProviderReplicate,
		Model:    model,
	}, nil
}

func (c *client) pollPrediction(ctx context.Context, predictionID string) (prediction, error) {
	var p prediction

	timeoutCtx, cancel := context.WithTimeout(ctx, c.pollingTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeoutCtx.Done():
			return p, fmt.Errorf("polling stopped: %w", timeoutCtx.Err())
		case <-ticker.C:
			predictionURL := fmt.Sprintf("%s/predictions/%s", c.baseURL, predictionID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, predictionURL, nil)
			if err != nil {
				return p, fmt.Errorf("failed to create HTTP request: %w", err)
			}

			respBody, err := c.doRequest(req)
			if err != nil {
				return p, fmt.Errorf("failed to get prediction: %w", err)
			}

			if err := json.Unmarshal(respBody, &p); err != nil {
				return p, fmt.Errorf("failed to parse prediction response: %w", err)
			}

			if isTerminalStatus(p.Status) {
				return p, nil
			}
		}
	}
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
		return nil, &domain.ProviderError{Provider: domain.ProviderReplicate, StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

func isTerminalStatus(status string) bool {
	return status == predictionStatusSucceeded ||
		status == predictionStatusFailed ||
		status == predictionStatusCanceled
}
