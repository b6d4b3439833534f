package branding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIImageGenerator renders images through the OpenAI image API.
type OpenAIImageGenerator struct {
	client     *openai.Client
	configured bool
}

// NewOpenAIImageGenerator constructs an image generator backed by the OpenAI API.
func NewOpenAIImageGenerator(apiKey string) *OpenAIImageGenerator {
	return &OpenAIImageGenerator{client: openai.NewClient(apiKey), configured: apiKey != ""}
}

// GenerateImage renders one 1024x1024 image and returns its hosted URL.
func (g *OpenAIImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("openai image generation: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("openai image generation: empty response")
	}

	return resp.Data[0].URL, nil
}
