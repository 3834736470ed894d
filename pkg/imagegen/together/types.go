package together

type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Steps  int    `json:"steps,omitempty"`
}

type imageGenerationResponse struct {
	Data []imageData `json:"data"`
}

type imageData struct {
	URL     string `json:"url"`
	B64JSON string `json:"b64_json"`
}
