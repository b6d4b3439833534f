package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tubeautomator/backend/internal/models"
)

var (
	// ErrNotConfigured indicates the object store credentials are absent.
	ErrNotConfigured = errors.New("object store not configured")
)

// DefaultSignedURLTTL is used when a caller does not request an expiry.
const DefaultSignedURLTTL = 3600 * time.Second

// ObjectStore abstracts the object storage collaborator. The S3 adapter and the
// deterministic mock expose identical shapes; callers can only tell them apart
// by content.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	PresignGet(ctx context.Context, key string, expiresIn time.Duration) (string, error)
	PresignPut(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]models.StorageObject, error)
}

// UserPrefix returns the object key prefix owned by the user.
func UserPrefix(userID string) string {
	return fmt.Sprintf("users/%s/", userID)
}

// ComputeUsage aggregates object sizes into the usage report shape.
func ComputeUsage(objects []models.StorageObject) models.StorageUsage {
	var bytes int64
	for _, obj := range objects {
		bytes += obj.Size
	}

	return models.StorageUsage{
		Bytes:     bytes,
		Megabytes: fmt.Sprintf("%.2f", float64(bytes)/(1024*1024)),
		Gigabytes: fmt.Sprintf("%.2f", float64(bytes)/(1024*1024*1024)),
		FileCount: len(objects),
	}
}

// Usage lists every object under the user's prefix and aggregates sizes.
func Usage(ctx context.Context, store ObjectStore, userID string) (models.StorageUsage, error) {
	objects, err := store.List(ctx, UserPrefix(userID))
	if err != nil {
		return models.StorageUsage{}, fmt.Errorf("list user objects: %w", err)
	}
	return ComputeUsage(objects), nil
}
