package stability

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imagine-ai/imagine/pkg/domain"
)

func TestGenerateReturnsInlineArtifact(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("png bytes"))

	var gotPath string
	var gotBody textToImageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []map[string]any{{"base64": encoded, "finishReason": "SUCCESS"}},
		})
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.baseURL = srv.URL
	c.hc = srv.Client()

	result, err := c.Generate(context.Background(), "a dramatic landscape painting", domain.ImageParams{
		Width:    1536,
		Height:   1024,
		Steps:    50,
		CFGScale: 10,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotPath != "/generation/"+domain.SDXLEngine+"/text-to-image" {
		t.Errorf("request path = %q", gotPath)
	}
	if len(gotBody.TextPrompts) != 1 || gotBody.TextPrompts[0].Text != "a dramatic landscape painting" {
		t.Errorf("text_prompts = %+v", gotBody.TextPrompts)
	}
	if gotBody.Width != 1536 || gotBody.Height != 1024 || gotBody.Steps != 50 || gotBody.CFGScale != 10 {
		t.Errorf("diffusion options not forwarded: %+v", gotBody)
	}

	if result.B64 != encoded {
		t.Errorf("B64 payload differs from the artifact")
	}
	if result.URL != "" {
		t.Errorf("URL = %q, want empty for an inline result", result.URL)
	}
	if result.Provider != domain.ProviderStability {
		t.Errorf("Provider = %q, want %q", result.Provider, domain.ProviderStability)
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	var gotBody textToImageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []map[string]any{{"base64": "aGk="}},
		})
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.baseURL = srv.URL
	c.hc = srv.Client()

	if _, err := c.Generate(context.Background(), "a zen garden", domain.ImageParams{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotBody.Width != defaultWidth || gotBody.Height != defaultHeight {
		t.Errorf("dimensions = %dx%d, want defaults", gotBody.Width, gotBody.Height)
	}
	if gotBody.Steps != defaultSteps || gotBody.CFGScale != defaultCFGScale {
		t.Errorf("steps/cfg_scale = %d/%v, want defaults", gotBody.Steps, gotBody.CFGScale)
	}
	if gotBody.Samples != 1 {
		t.Errorf("samples = %d, want 1", gotBody.Samples)
	}
}
