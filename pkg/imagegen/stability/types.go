package stability

type textToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Steps       int          `json:"steps"`
	CFGScale    float64      `json:"cfg_scale"`
	Samples     int          `json:"samples"`
}

type textPrompt struct {
	Text string `json:"text"`
}

type textToImageResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

type artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}
