package domain

const (
	ProviderOpenAI    = "openai"
	ProviderGrok      = "grok"
	ProviderStability = "stability"
	ProviderReplicate = "replicate"
	ProviderTogether  = "together"
)

// KnownProviders is the closed set of provider names the generator can
// dispatch to. Adding a provider means adding an adapter package and an
// entry here.
var KnownProviders = []string{
	ProviderOpenAI,
	ProviderGrok,
	ProviderStability,
	ProviderReplicate,
	ProviderTogether,
}

// ImageResult is the normalized outcome of a generation call. Exactly one
// of URL or B64 is populated; Provider and Model are always set so the
// stored filename stays traceable to its origin.
type ImageResult struct {
	URL      string
	B64      string
	Provider string
	Model    string
}
