package platform

import (
	"context"
	"errors"

	"github.com/tubeautomator/backend/internal/models"
)

var (
	// ErrNotConfigured indicates no video-platform credential is available.
	ErrNotConfigured = errors.New("video platform not configured")
)

// Channel is a provisioned channel handle on the video platform.
type Channel struct {
	ID   string
	Name string
	URL  string
}

// VideoPlatform wraps the video platform's data API.
type VideoPlatform interface {
	// ValidateKey reports whether the supplied API key can reach the platform.
	ValidateKey(ctx context.Context, apiKey string) (bool, error)
	// Categories lists the platform's upload categories.
	Categories(ctx context.Context) ([]models.Category, error)
	// CreateChannel provisions a managed channel handle.
	CreateChannel(ctx context.Context, name, niche string) (Channel, error)
}
