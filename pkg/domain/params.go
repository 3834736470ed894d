package domain

const (
	DallE2Model      = "dall-e-2"
	DallE3Model      = "dall-e-3"
	GrokImageModel   = "grok-2-image"
	SDXLEngine       = "stable-diffusion-xl-1024-v1-0"
	FluxSchnellModel = "black-forest-labs/flux-schnell"
	FluxFreeModel    = "black-forest-labs/FLUX.1-schnell-Free"
)

type ImageSize string

const (
	Size256x256   ImageSize = "256x256"
	Size512x512   ImageSize = "512x512"
	Size1024x1024 ImageSize = "1024x1024"
	Size1024x1792 ImageSize = "1024x1792"
	Size1792x1024 ImageSize = "1792x1024"
)

type ImageQuality string

const (
	QualityStandard ImageQuality = "standard"
	QualityHD       ImageQuality = "hd"
)

type ImageStyle string

const (
	StyleVivid   ImageStyle = "vivid"
	StyleNatural ImageStyle = "natural"
)

// ImageParams carries the per-provider generation options as typed fields.
// Each adapter reads only the fields its API understands and validates them
// at its own boundary; zero values mean "use the provider default".
type ImageParams struct {
	Model    string
	Size     ImageSize
	Quality  ImageQuality
	Style    ImageStyle
	Width    int
	Height   int
	Steps    int
	CFGScale float64
}
