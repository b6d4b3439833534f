package branding

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"

	"github.com/tubeautomator/backend/internal/models"
)

var (
	// ErrNotConfigured indicates no image-generation credential is available.
	ErrNotConfigured = errors.New("image generator not configured")
)

// ImageGenerator renders a single image for a prompt and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Service composes branding assets from the image generator.
type Service struct {
	images ImageGenerator
}

// NewService constructs a branding service over the provided generator.
func NewService(images ImageGenerator) *Service {
	return &Service{images: images}
}

// Logo generates a channel logo image.
func (s *Service) Logo(ctx context.Context, name, niche, style string) (string, error) {
	prompt := fmt.Sprintf("Minimal modern logo for a YouTube channel named %q in the %s niche, %s style, flat design, no text", name, niche, styleOrDefault(style))
	imageURL, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate logo: %w", err)
	}
	return imageURL, nil
}

// Banner generates a channel banner image.
func (s *Service) Banner(ctx context.Context, name, niche, style string) (string, error) {
	prompt := fmt.Sprintf("Wide YouTube channel banner for %q, %s niche, %s style, 2560x1440, clean composition", name, niche, styleOrDefault(style))
	imageURL, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate banner: %w", err)
	}
	return imageURL, nil
}

// Thumbnail generates a video thumbnail from a title.
func (s *Service) Thumbnail(ctx context.Context, title, niche, style string) (string, error) {
	prompt := fmt.Sprintf("High contrast YouTube thumbnail for a video titled %q, %s niche, %s style, bold focal point", title, niche, styleOrDefault(style))
	imageURL, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate thumbnail: %w", err)
	}
	return imageURL, nil
}

// BrandPackage generates a logo, banner and derived color palette for a channel.
func (s *Service) BrandPackage(ctx context.Context, name, niche string) (models.BrandPackage, error) {
	logoURL, err := s.Logo(ctx, name, niche, "")
	if err != nil {
		return models.BrandPackage{}, err
	}

	bannerURL, err := s.Banner(ctx, name, niche, "")
	if err != nil {
		return models.BrandPackage{}, err
	}

	return models.BrandPackage{
		LogoURL:   logoURL,
		BannerURL: bannerURL,
		Palette:   Palette(name + "/" + niche),
	}, nil
}

// Palette derives a stable five-color palette from the seed so that repeated
// calls for the same channel agree.
func Palette(seed string) []string {
	sum := sha256.Sum256([]byte(seed))

	palette := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		palette = append(palette, fmt.Sprintf("#%02x%02x%02x", sum[i*3], sum[i*3+1], sum[i*3+2]))
	}
	return palette
}

// PlaceholderImageURL builds a deterministic placeholder image location used by
// the mock generator.
func PlaceholderImageURL(kind, label string) string {
	return fmt.Sprintf("https://placehold.tubeautomator.local/%s/1024x1024?text=%s", kind, url.QueryEscape(label))
}

func styleOrDefault(style string) string {
	if style == "" {
		return "modern"
	}
	return style
}
