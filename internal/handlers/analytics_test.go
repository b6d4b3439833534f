package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tubeautomator/backend/internal/models"
)

func TestAnalyticsHandlerRequiresUserID(t *testing.T) {
	handler := AnalyticsHandler{Schedules: &fakeScheduleStore{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestAnalyticsHandlerListsScheduledVideos(t *testing.T) {
	schedules := &fakeScheduleStore{}
	now := time.Now().UTC()
	schedules.schedules = []models.ScheduledVideo{
		{ID: "s1", UserID: "user-1", VideoID: "v1", ScheduledTime: now.Add(time.Hour)},
		{ID: "s2", UserID: "user-2", VideoID: "v2", ScheduledTime: now.Add(2 * time.Hour)},
		{ID: "s3", UserID: "user-1", VideoID: "v3", ScheduledTime: now.Add(3 * time.Hour)},
	}

	handler := AnalyticsHandler{Schedules: schedules}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics?userId=user-1", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	videos, ok := envelope["videos"].([]any)
	if !ok || len(videos) != 2 {
		t.Fatalf("expected 2 videos for user-1, got %v", envelope["videos"])
	}
}

func TestAnalyticsHandlerEmptyListIsAnArray(t *testing.T) {
	handler := AnalyticsHandler{Schedules: &fakeScheduleStore{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics?userId=nobody", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	envelope := decodeEnvelope(t, rec)
	videos, ok := envelope["videos"].([]any)
	if !ok {
		t.Fatalf("expected empty array, got %v", envelope["videos"])
	}
	if len(videos) != 0 {
		t.Fatalf("expected no videos, got %d", len(videos))
	}
}
