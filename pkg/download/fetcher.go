package download

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imagine-ai/imagine/pkg/domain"
)

type Fetcher struct {
	hc *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		hc: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch turns a generation result into raw image bytes: a hosted result is
// downloaded, an inline result is base64-decoded. Exactly one branch runs.
func (f *Fetcher) Fetch(ctx context.Context, result *domain.ImageResult) ([]byte, error) {
	switch {
	case result.URL != "":
		data, err := f.download(ctx, result.URL)
		if err != nil {
			return nil, fmt.Errorf("downloading image: %w", err)
		}
		return data, nil
	case result.B64 != "":
		data, err := base64.StdEncoding.DecodeString(result.B64)
		if err != nil {
			return nil, fmt.Errorf("decoding inline image data: %w", err)
		}
		return data, nil
	default:
		return nil, domain.ErrNoImagePayload
	}
}

func (f *Fetcher) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}
