package together

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imagine-ai/imagine/pkg/domain"
)

func TestGenerateForwardsDiffusionOptions(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"url": "https://api.together.xyz/img.png"}},
		})
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.baseURL = srv.URL
	c.hc = srv.Client()

	result, err := c.Generate(context.Background(), "northern lights", domain.ImageParams{
		Width:  1024,
		Height: 768,
		Steps:  4,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotBody["width"] != float64(1024) || gotBody["height"] != float64(768) || gotBody["steps"] != float64(4) {
		t.Errorf("diffusion options not forwarded, body = %v", gotBody)
	}
	if gotBody["model"] != domain.FluxFreeModel {
		t.Errorf("model = %v, want default %q", gotBody["model"], domain.FluxFreeModel)
	}
	if result.URL != "https://api.together.xyz/img.png" {
		t.Errorf("URL = %q, want the hosted image", result.URL)
	}
}

func TestGenerateSurfacesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.baseURL = srv.URL
	c.hc = srv.Client()

	_, err = c.Generate(context.Background(), "northern lights", domain.ImageParams{})

	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", pe.StatusCode)
	}
}
