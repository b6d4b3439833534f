package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tubeautomator/backend/internal/models"
)

// MockStore is a deterministic in-memory ObjectStore used when object-store
// credentials are absent. URLs are stable placeholder values.
type MockStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]models.StorageObject
	now     func() time.Time
}

// NewMockStore constructs an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		BaseURL: "https://storage.tubeautomator.local",
		objects: make(map[string]models.StorageObject),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload records the object and returns its placeholder location.
func (m *MockStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("mock storage: empty key")
	}

	size := int64(0)
	if body != nil {
		n, err := io.Copy(io.Discard, body)
		if err != nil {
			return "", fmt.Errorf("mock storage read body: %w", err)
		}
		size = n
	}

	m.mu.Lock()
	m.objects[key] = models.StorageObject{Key: key, Size: size, LastModified: m.now()}
	m.mu.Unlock()

	return fmt.Sprintf("%s/%s", m.BaseURL, key), nil
}

// PresignGet returns a deterministic signed-looking URL.
func (m *MockStore) PresignGet(_ context.Context, key string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLTTL
	}
	return fmt.Sprintf("%s/%s?signature=mock&expires=%d", m.BaseURL, strings.TrimLeft(key, "/"), int(expiresIn.Seconds())), nil
}

// PresignPut returns a deterministic upload URL.
func (m *MockStore) PresignPut(_ context.Context, key, _ string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLTTL
	}
	return fmt.Sprintf("%s/%s?signature=mock-upload&expires=%d", m.BaseURL, strings.TrimLeft(key, "/"), int(expiresIn.Seconds())), nil
}

// Delete removes the object when present.
func (m *MockStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, strings.TrimLeft(key, "/"))
	m.mu.Unlock()
	return nil
}

// List returns recorded objects under the prefix in key order.
func (m *MockStore) List(_ context.Context, prefix string) ([]models.StorageObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []models.StorageObject
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, obj)
		}
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}
