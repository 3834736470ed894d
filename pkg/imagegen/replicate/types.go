package replicate

import (
	"encoding/json"
	"errors"
	"time"
)

type prediction struct {
	ID          string            `json:"id"`
	Version     string            `json:"version"`
	Logs        string            `json:"logs"`
	Error       string            `json:"error"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt time.Time         `json:"completed_at,omitempty"`
	URLs        map[string]string `json:"urls"`
	Output      json.RawMessage   `json:"output"`
}

// outputURL extracts the generated image URL. Depending on the model the
// output field is either a single string or an array of strings; an array
// yields its first element.
func (p prediction) outputURL() (string, error) {
	if len(p.Output) == 0 {
		return "", errors.New("no output returned")
	}

	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		if single == "" {
			return "", errors.New("empty output returned")
		}
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil {
		if len(many) == 0 || many[0] == "" {
			return "", errors.New("empty output returned")
		}
		return many[0], nil
	}

	return "", errors.New("unrecognized output format")
}

type createPredictionRequest struct {
	Input map[string]interface{} `json:"input"`
}

const (
	predictionStatusStarting   = "starting"
	predictionStatusProcessing = "processing"
	predictionStatusSucceeded  = "succeeded"
	predictionStatusFailed     = "failed"
	predictionStatusCanceled   = "canceled"
)
