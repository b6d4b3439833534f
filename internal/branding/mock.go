package branding

import "context"

// MockImageGenerator constructs deterministic placeholder image URLs, keeping
// environments without an image-generation credential functional.
type MockImageGenerator struct{}

// GenerateImage returns a stable placeholder URL derived from the prompt.
func (MockImageGenerator) GenerateImage(_ context.Context, prompt string) (string, error) {
	label := prompt
	if len(label) > 48 {
		label = label[:48]
	}
	return PlaceholderImageURL("generated", label), nil
}
