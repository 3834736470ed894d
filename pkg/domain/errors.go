package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPrompt is returned before any provider interaction when the
	// caller submits a blank prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrUnknownProvider is returned when the requested provider name is
	// not one of the known adapter kinds.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderNotConfigured is returned when the provider is known but
	// no credential was registered for it.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrNoImagePayload is returned when a generation result carries
	// neither a URL nor inline image data.
	ErrNoImagePayload = errors.New("generation result has no image payload")
)

// ProviderError reports a failed provider call. The raw response body is
// kept as diagnostic detail.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d, response: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
