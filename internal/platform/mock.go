package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/tubeautomator/backend/internal/models"
)

// mockCategories mirrors the assignable subset of the real platform's US list.
var mockCategories = []models.Category{
	{ID: "1", Title: "Film & Animation"},
	{ID: "2", Title: "Autos & Vehicles"},
	{ID: "10", Title: "Music"},
	{ID: "17", Title: "Sports"},
	{ID: "20", Title: "Gaming"},
	{ID: "22", Title: "People & Blogs"},
	{ID: "23", Title: "Comedy"},
	{ID: "24", Title: "Entertainment"},
	{ID: "25", Title: "News & Politics"},
	{ID: "26", Title: "Howto & Style"},
	{ID: "27", Title: "Education"},
	{ID: "28", Title: "Science & Technology"},
}

// MockPlatform is a deterministic stand-in used when no platform credential is
// configured.
type MockPlatform struct{}

// ValidateKey accepts any key with a plausible Data API shape.
func (MockPlatform) ValidateKey(_ context.Context, apiKey string) (bool, error) {
	apiKey = strings.TrimSpace(apiKey)
	return strings.HasPrefix(apiKey, "AIza") && len(apiKey) >= 30, nil
}

// Categories returns the fixed category list.
func (MockPlatform) Categories(_ context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(mockCategories))
	copy(out, mockCategories)
	return out, nil
}

// CreateChannel returns a deterministic channel handle derived from the name.
func (MockPlatform) CreateChannel(_ context.Context, name, _ string) (Channel, error) {
	handle := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return Channel{
		ID:   "UC-mock-" + handle,
		Name: name,
		URL:  fmt.Sprintf("https://www.youtube.com/@%s", handle),
	}, nil
}
