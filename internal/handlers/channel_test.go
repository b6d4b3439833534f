package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tubeautomator/backend/internal/branding"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/platform"
	"github.com/tubeautomator/backend/internal/repositories"
)

type fakeChannelStore struct {
	channels map[string]models.Channel
}

func newFakeChannelStore() *fakeChannelStore {
	return &fakeChannelStore{channels: make(map[string]models.Channel)}
}

func (s *fakeChannelStore) Create(_ context.Context, channel models.Channel) error {
	if _, exists := s.channels[channel.UserID]; exists {
		return repositories.ErrConflict
	}
	s.channels[channel.UserID] = channel
	return nil
}

func (s *fakeChannelStore) FindByUser(_ context.Context, userID string) (models.Channel, error) {
	channel, ok := s.channels[userID]
	if !ok {
		return models.Channel{}, repositories.ErrNotFound
	}
	return channel, nil
}

type fakeAPIKeyStore struct {
	records map[string]models.APIKeyRecord
}

func newFakeAPIKeyStore() *fakeAPIKeyStore {
	return &fakeAPIKeyStore{records: make(map[string]models.APIKeyRecord)}
}

func (s *fakeAPIKeyStore) Upsert(_ context.Context, record models.APIKeyRecord) error {
	s.records[record.UserID+"/"+record.Service] = record
	return nil
}

func (s *fakeAPIKeyStore) Find(_ context.Context, userID, service string) (models.APIKeyRecord, error) {
	record, ok := s.records[userID+"/"+service]
	if !ok {
		return models.APIKeyRecord{}, repositories.ErrNotFound
	}
	record.Configured = record.Key != ""
	return record, nil
}

func (s *fakeAPIKeyStore) StatusForUser(_ context.Context, userID string) (map[string]bool, error) {
	status := make(map[string]bool)
	for _, record := range s.records {
		if record.UserID == userID {
			status[record.Service] = record.Key != ""
		}
	}
	return status, nil
}

type failingBrandService struct{}

func (failingBrandService) Logo(context.Context, string, string, string) (string, error) {
	return "", errors.New("image backend unavailable")
}

func (failingBrandService) Banner(context.Context, string, string, string) (string, error) {
	return "", errors.New("image backend unavailable")
}

func (failingBrandService) Thumbnail(context.Context, string, string, string) (string, error) {
	return "", errors.New("image backend unavailable")
}

func (failingBrandService) BrandPackage(context.Context, string, string) (models.BrandPackage, error) {
	return models.BrandPackage{}, errors.New("image backend unavailable")
}

func newChannelHandler(subs *fakeSubscriptionStore) ChannelHandler {
	return ChannelHandler{
		Channels:      newFakeChannelStore(),
		Subscriptions: subs,
		Brand:         branding.NewService(branding.MockImageGenerator{}),
		Platform:      platform.MockPlatform{},
		Keys:          newFakeAPIKeyStore(),
	}
}

func subscribed(planID string) *fakeSubscriptionStore {
	subs := newFakeSubscriptionStore()
	subs.subs["user-1"] = models.Subscription{UserID: "user-1", PlanID: planID, Status: models.SubscriptionStatusActive}
	return subs
}

func TestChannelHandlerCreateRequiresPremiumPlan(t *testing.T) {
	for _, planID := range []string{"free", "basic"} {
		t.Run(planID, func(t *testing.T) {
			handler := newChannelHandler(subscribed(planID))

			rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
				"action":      "create-channel",
				"userId":      "user-1",
				"channelName": "My Channel",
			})

			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected status %d got %d", http.StatusForbidden, rec.Code)
			}

			envelope := decodeEnvelope(t, rec)
			if envelope["success"] != false {
				t.Fatalf("expected success=false, got %v", envelope["success"])
			}
			if envelope["error"] != "Premium subscription required" {
				t.Fatalf("expected premium gate message, got %v", envelope["error"])
			}
		})
	}
}

// A client-supplied plan field must never satisfy the gate: entitlement comes
// from the persisted subscription, and a user without one is free-tier.
func TestChannelHandlerCreateIgnoresRequestPlan(t *testing.T) {
	handler := newChannelHandler(newFakeSubscriptionStore())

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "Sneaky Channel",
		"plan":        "pro",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d got %d: %s", http.StatusForbidden, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["error"] != "Premium subscription required" {
		t.Fatalf("expected premium gate message, got %v", envelope["error"])
	}

	if _, err := handler.Channels.(*fakeChannelStore).FindByUser(context.Background(), "user-1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected no channel persisted, got %v", err)
	}
	if records := handler.Keys.(*fakeAPIKeyStore).records; len(records) != 0 {
		t.Fatalf("expected no credential persisted, got %v", records)
	}
}

type failingSubscriptionStore struct{}

func (failingSubscriptionStore) Upsert(context.Context, models.Subscription) error {
	return errors.New("subscription backend unavailable")
}

func (failingSubscriptionStore) FindByUser(context.Context, string) (models.Subscription, error) {
	return models.Subscription{}, errors.New("subscription backend unavailable")
}

func TestChannelHandlerCreateSubscriptionLookupFailure(t *testing.T) {
	handler := newChannelHandler(newFakeSubscriptionStore())
	handler.Subscriptions = failingSubscriptionStore{}

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "My Channel",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d: %s", http.StatusInternalServerError, rec.Code, rec.Body.String())
	}
	if _, err := handler.Channels.(*fakeChannelStore).FindByUser(context.Background(), "user-1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected no channel persisted, got %v", err)
	}
}

func TestChannelHandlerCreateChannel(t *testing.T) {
	handler := newChannelHandler(subscribed("pro"))

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "Tech Tonic",
		"niche":       "technology",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	channel, ok := envelope["channel"].(map[string]any)
	if !ok {
		t.Fatalf("expected channel, got %v", envelope["channel"])
	}
	if channel["name"] != "Tech Tonic" {
		t.Fatalf("expected channel name, got %v", channel["name"])
	}
	if channel["logoUrl"] == "" || channel["bannerUrl"] == "" {
		t.Fatalf("expected branding URLs, got %v", channel)
	}
	if palette, ok := channel["palette"].([]any); !ok || len(palette) == 0 {
		t.Fatalf("expected derived palette, got %v", channel["palette"])
	}

	stored, err := handler.Channels.(*fakeChannelStore).FindByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected persisted channel: %v", err)
	}
	if stored.APIKeyID == "" {
		t.Fatal("expected derived api key reference on the channel")
	}
	if _, err := handler.Keys.(*fakeAPIKeyStore).Find(context.Background(), "user-1", "youtube"); err != nil {
		t.Fatalf("expected derived api key record: %v", err)
	}
}

func TestChannelHandlerCreateChannelNamesFailedStep(t *testing.T) {
	handler := newChannelHandler(subscribed("enterprise"))
	handler.Brand = failingBrandService{}

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "Doomed Channel",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "branding") {
		t.Fatalf("expected branding step named in error, got %q", msg)
	}
}

// A duplicate-channel conflict must not leave the derived credential behind.
func TestChannelHandlerCreateConflictLeavesNoCredential(t *testing.T) {
	handler := newChannelHandler(subscribed("pro"))
	handler.Channels.(*fakeChannelStore).channels["user-1"] = models.Channel{ID: "existing", UserID: "user-1"}

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "Duplicate",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d got %d: %s", http.StatusConflict, rec.Code, rec.Body.String())
	}
	if records := handler.Keys.(*fakeAPIKeyStore).records; len(records) != 0 {
		t.Fatalf("expected no credential after conflict, got %v", records)
	}
}

func TestChannelHandlerGetChannel(t *testing.T) {
	handler := newChannelHandler(subscribed("pro"))

	rec := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action": "get-channel",
		"userId": "user-1",
	})

	envelope := decodeEnvelope(t, rec)
	if envelope["hasChannel"] != false {
		t.Fatalf("expected hasChannel=false, got %v", envelope["hasChannel"])
	}

	create := postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action":      "create-channel",
		"userId":      "user-1",
		"channelName": "Second Look",
	})
	if create.Code != http.StatusOK {
		t.Fatalf("create: status %d: %s", create.Code, create.Body.String())
	}

	rec = postJSON(t, handler.Handle, "/api/v1/youtube-channel", map[string]any{
		"action": "get-channel",
		"userId": "user-1",
	})

	envelope = decodeEnvelope(t, rec)
	if envelope["hasChannel"] != true {
		t.Fatalf("expected hasChannel=true, got %v", envelope["hasChannel"])
	}
}
